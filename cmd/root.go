/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/commentree/apiserver/config"
	"github.com/commentree/apiserver/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "commentree",
	Short: "Threaded comment board backend",
	Long: `commentree serves a threaded comment board with password accounts
and bearer tokens. Usage:

	commentree server
	commentree migrate up
	commentree seed --comments 100
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the process logger or exits when the config is unusable.
func newLogger(cfg config.Config) *zap.Logger {
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	return log
}

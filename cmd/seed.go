/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/commentree/apiserver/config"
	"github.com/commentree/apiserver/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedComments int

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo account and a block of nested comments",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		log := newLogger(cfg)
		defer func() { _ = log.Sync() }()

		svcs, closeAll, err := openServices(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer closeAll()

		result, err := services.Seed(cmd.Context(), svcs.Accounts, svcs.Comments, seedComments)
		if err != nil {
			return err
		}

		log.Info("seed complete",
			zap.Int64("account_id", result.Account.ID),
			zap.Bool("account_created", result.Created),
			zap.Int("comments", len(result.Comments)),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedComments, "comments", 100, "number of comments to create")
}

/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/commentree/apiserver/config"
	"github.com/commentree/apiserver/internal/services"
	"github.com/commentree/apiserver/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Upload a JSON snapshot of the comment tree to object storage",
	Long: `Builds the current comment tree and uploads it to the bucket selected by
STORAGE_BACKEND. The object key is printed on success. Usage:

	commentree export
	commentree export get exports/comments-20240101T000000Z.json
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		log := newLogger(cfg)
		defer func() { _ = log.Sync() }()

		objects, err := openStorage(cmd, cfg)
		if err != nil {
			return err
		}
		if err := objects.EnsureBucket(cmd.Context()); err != nil {
			return fmt.Errorf("ensure bucket %s: %w", objects.Bucket(), err)
		}

		svcs, closeAll, err := openServices(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer closeAll()

		key, err := services.NewExportService(svcs.Comments, objects).Export(cmd.Context())
		if err != nil {
			return err
		}

		log.Info("export uploaded", zap.String("bucket", objects.Bucket()), zap.String("key", key))
		fmt.Fprintln(cmd.OutOrStdout(), key)
		return nil
	},
}

var exportGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a previously uploaded export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		objects, err := openStorage(cmd, config.LoadConfig())
		if err != nil {
			return err
		}

		rc, err := objects.Get(cmd.Context(), args[0])
		if errors.Is(err, storage.ErrObjectNotFound) {
			return fmt.Errorf("no export stored under %s in bucket %s", args[0], objects.Bucket())
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", args[0], err)
		}
		defer rc.Close()

		_, err = io.Copy(cmd.OutOrStdout(), rc)
		return err
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportGetCmd)
}

func openStorage(cmd *cobra.Command, cfg config.Config) (*storage.Storage, error) {
	objects, err := storage.Open(cmd.Context(), cfg.Storage)
	if err != nil {
		return nil, err
	}
	if objects == nil {
		return nil, errors.Join(services.ErrExportUnavailable, errors.New("set STORAGE_BACKEND to minio or gcs"))
	}
	return objects, nil
}

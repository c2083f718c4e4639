/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/commentree/apiserver/config"
	"github.com/commentree/apiserver/internal/mq"
	"github.com/commentree/apiserver/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var eventsChannel string

// eventsCmd represents the events command
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect domain events on the message broker",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Log every event published on a channel until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		log := newLogger(cfg)
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		queue, err := mq.Open(ctx, cfg.MQ)
		if err != nil {
			return err
		}
		if queue == nil {
			return errors.New("MQ_BACKEND is not configured")
		}
		defer func() { _ = queue.Close() }()

		log.Info("tailing events", zap.String("channel", eventsChannel))
		err = queue.Subscribe(ctx, eventsChannel, func(ctx context.Context, msg mq.Message) error {
			log.Info("event",
				zap.String("message_id", msg.ID),
				zap.String("event_type", msg.Attributes[services.AttrEventType]),
				zap.ByteString("payload", msg.Data),
			)
			return nil
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsTailCmd)

	eventsTailCmd.Flags().StringVar(&eventsChannel, "channel", services.ChannelComments, "channel to subscribe to")
}

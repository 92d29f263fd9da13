package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/trogers1052/stock-analyst/internal/kafka"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume analysis requests from Kafka and publish results",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Kafka.KafkaEnabled() {
			return errors.New("worker mode requires kafka.brokers or KAFKA_BROKERS")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.RequestsTopic, cfg.Kafka.GroupID, a.service, logger)
		return consumer.Start(ctx)
	},
}

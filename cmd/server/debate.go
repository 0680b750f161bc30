package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"debatebot/services"

	"github.com/spf13/cobra"
)

func newDebateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debate <topic>",
		Short: "Generate a full debate on a topic and print it as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDebate,
	}
	cmd.Flags().Bool("stream", false, "Print each speech to stderr as it is generated")
	return cmd
}

func runDebate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	stream, _ := cmd.Flags().GetBool("stream")
	topic := strings.Join(args, " ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	svc := services.NewDebateService(gen, logger, services.DebateOptions{
		Sequential:   cfg.Debate.Sequential,
		SummaryWords: cfg.Debate.SummaryWords,
	})

	var onArgument func(services.ArgumentEvent)
	if stream {
		onArgument = func(ev services.ArgumentEvent) {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s %s] %s\n\n", ev.Side, ev.Round, ev.Argument.Full)
		}
	}

	debate, err := svc.Run(ctx, topic, onArgument)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(debate)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/alfredjeanlab/intake/internal/events"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print consumption events as they are logged",
	Long: `Subscribe to the server's NATS event stream and print each saved event.

The NATS URL comes from --nats, then INTAKE_NATS_URL, then the active
remote. Events published while watch is disconnected are not replayed.`,
	GroupID:           "consumption",
	Args:              cobra.NoArgs,
	PersistentPreRunE: noClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		natsURL, _ := cmd.Flags().GetString("nats")
		if natsURL == "" {
			natsURL = defaultNATSURL()
		}
		if natsURL == "" {
			return fmt.Errorf("no NATS URL: pass --nats, set INTAKE_NATS_URL, or add one to the active remote")
		}
		user, _ := cmd.Flags().GetString("user")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		sub, err := events.NewNATSSubscriber(natsURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				log.Printf("nats: disconnected: %v", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				log.Printf("nats: reconnected")
			}),
		)
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer sub.Close()

		return watchEvents(ctx, sub, user, cmd.OutOrStdout())
	},
}

func defaultNATSURL() string {
	if s := os.Getenv("INTAKE_NATS_URL"); s != "" {
		return s
	}
	if r, ok := activeRemote(); ok {
		return r.NATSURL
	}
	return ""
}

// watchEvents prints every logged event for user (all users when empty)
// until ctx is done.
func watchEvents(ctx context.Context, sub events.Subscriber, user string, w io.Writer) error {
	ch, err := sub.Subscribe(ctx, events.TopicConsumptionLogged)
	if err != nil {
		return fmt.Errorf("subscribing to events: %w", err)
	}

	for data := range ch {
		logged, err := events.DecodeConsumptionLogged(data)
		if err != nil {
			log.Printf("skipping event: %v", err)
			continue
		}
		if user != "" && logged.Event.UserID != user {
			continue
		}
		if jsonOutput {
			line, err := json.Marshal(logged.Event)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(line))
			continue
		}
		printEventLine(w, logged.Event)
	}
	return nil
}

func init() {
	watchCmd.Flags().String("nats", "", "NATS server URL")
	watchCmd.Flags().String("user", "", "only print events for this user_id")
}

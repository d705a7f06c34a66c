package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/events"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/kafka"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/observability"
)

func (a *App) eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Follow the decision event stream",
	}

	var (
		cfg   kafka.Config
		topic string
	)
	tail := &cobra.Command{
		Use:     "tail",
		Short:   "Print decision events as they are published",
		Example: "  sentinelctl events tail --brokers localhost:9092 --from-beginning",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := observability.InitLogger(observability.LogConfig{
				Output:  cmd.ErrOrStderr(),
				Level:   "warn",
				Service: "sentinelctl",
			})
			format := strings.ToLower(a.v.GetString("output"))

			consumer, err := kafka.NewConsumer(cfg, topic, func(_ context.Context, msg kafka.Message) error {
				return writeEvent(a.out, format, msg)
			}, logger)
			if err != nil {
				return err
			}
			defer func() { _ = consumer.Close() }()

			return consumer.Start(cmd.Context())
		},
	}

	flags := tail.Flags()
	flags.StringSliceVar(&cfg.Brokers, "brokers", []string{"localhost:9092"}, "Kafka bootstrap brokers")
	flags.StringVar(&topic, "topic", "sentinel.decisions", "decision event topic")
	flags.StringVar(&cfg.ConsumerGroup, "group", "", "consumer group; offsets are committed when set")
	flags.BoolVar(&cfg.FromBeginning, "from-beginning", false, "start from the oldest retained event (without --group)")
	flags.BoolVar(&cfg.TLS, "kafka-tls", false, "connect to Kafka with TLS")

	cmd.AddCommand(tail)
	return cmd
}

// eventLine is the structured form of one consumed event.
type eventLine struct {
	Payload       json.RawMessage `json:"payload"`
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	OccurredAt    string          `json:"occurred_at"`
}

func writeEvent(w io.Writer, format string, msg kafka.Message) error {
	line := eventLine{
		EventID:       msg.Headers[events.HeaderEventID],
		EventType:     msg.Headers[events.HeaderEventType],
		AggregateType: msg.Headers[events.HeaderAggregateType],
		AggregateID:   string(msg.Key),
		OccurredAt:    msg.Headers[events.HeaderOccurredAt],
		Payload:       msg.Value,
	}
	if !json.Valid(line.Payload) {
		quoted, err := json.Marshal(string(msg.Value))
		if err != nil {
			return err
		}
		line.Payload = quoted
	}

	switch format {
	case "json":
		return json.NewEncoder(w).Encode(line)
	case "yaml":
		if err := writeYAML(w, line); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, "---")
		return err
	default:
		_, err := fmt.Fprintf(w, "%s  %-28s %s %s\n", line.OccurredAt, line.EventType, line.AggregateID, line.Payload)
		return err
	}
}

package notify

import (
	"context"
	"log/slog"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
)

// Compile-time interface checks.
var (
	_ port.UserNotifier  = (*LogNotifier)(nil)
	_ port.AgentNotifier = (*LogNotifier)(nil)
)

// LogNotifier records notifications in the log. It stands in for the
// webhooks in development.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyUser(ctx context.Context, phoneNumber, message string) error {
	n.logger.InfoContext(ctx, "sms notification",
		slog.String("phone_number", phoneNumber),
		slog.String("message", message),
	)
	return nil
}

func (n *LogNotifier) NotifyAgent(ctx context.Context, agentID, summary string) error {
	n.logger.InfoContext(ctx, "agent notification",
		slog.String("agent_id", agentID),
		slog.String("summary", summary),
	)
	return nil
}

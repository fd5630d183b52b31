package slack

import (
	"context"
	"fmt"
	"log/slog"

	slackapi "github.com/slack-go/slack"

	"github.com/stackline/mcp-productboard/internal/logging"
)

// AckReaction is the emoji added to a user message while its request is
// being processed and removed once the response is delivered.
const AckReaction = "eyes"

// maxSnippetBytes caps the size of a JSON payload posted as a snippet
// before Slack starts rejecting or collapsing it.
const maxSnippetBytes = 100 * 1024

// api is the subset of the Slack client used by the notifier, extracted
// for tests.
type api interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
	AddReactionContext(ctx context.Context, name string, item slackapi.ItemRef) error
	RemoveReactionContext(ctx context.Context, name string, item slackapi.ItemRef) error
	AuthTestContext(ctx context.Context) (*slackapi.AuthTestResponse, error)
}

// Notifier delivers tool output to Slack channels and manages the
// acknowledgement reactions around a user-facing turn.
type Notifier struct {
	client         api
	defaultChannel string
	logger         *slog.Logger
}

// Config configures a Notifier.
type Config struct {
	// BotToken is the Slack bot token (xoxb-...). Required.
	BotToken string

	// DefaultChannel receives deliveries when the caller names none.
	DefaultChannel string

	Logger *slog.Logger
}

// NewNotifier builds a Notifier from a bot token.
func NewNotifier(cfg Config) (*Notifier, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("slack bot token is required (set SLACK_BOT_TOKEN)")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		client:         slackapi.New(cfg.BotToken),
		defaultChannel: cfg.DefaultChannel,
		logger:         logger,
	}, nil
}

// DefaultChannel returns the configured fallback channel.
func (n *Notifier) DefaultChannel() string {
	return n.defaultChannel
}

// Verify checks the token against auth.test. Called once at startup so a
// bad token fails fast instead of on the first delivery.
func (n *Notifier) Verify(ctx context.Context) error {
	resp, err := n.client.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("slack auth test failed: %w", err)
	}
	n.logger.Info("slack notifier ready",
		slog.String("bot_user", resp.User),
		slog.String("team", resp.Team))
	return nil
}

// PostMessage posts plain text to a channel, optionally threading under
// threadTS. Returns the timestamp of the posted message.
func (n *Notifier) PostMessage(ctx context.Context, channel, text, threadTS string) (string, error) {
	channel = n.resolveChannel(channel)
	if channel == "" {
		return "", fmt.Errorf("no Slack channel given and no default configured")
	}

	opts := []slackapi.MsgOption{slackapi.MsgOptionText(text, false)}
	if threadTS != "" {
		opts = append(opts, slackapi.MsgOptionTS(threadTS))
	}

	_, ts, err := n.client.PostMessageContext(ctx, channel, opts...)
	if err != nil {
		n.logger.Warn("slack post failed", logging.Channel(channel), logging.Err(err))
		return "", fmt.Errorf("failed to post to %s: %w", channel, err)
	}
	return ts, nil
}

// PostToolResult posts a titled message with a JSON payload rendered as a
// code block, threading under threadTS when given.
func (n *Notifier) PostToolResult(ctx context.Context, channel, title, payload, threadTS string) (string, error) {
	if len(payload) > maxSnippetBytes {
		payload = payload[:maxSnippetBytes]
	}
	text := title
	if payload != "" {
		text = fmt.Sprintf("%s\n```%s```", title, payload)
	}
	return n.PostMessage(ctx, channel, text, threadTS)
}

// Acknowledge adds the ack reaction to the referenced user message.
// Failures are logged, not surfaced: a missing reaction must never fail
// the actual delivery.
func (n *Notifier) Acknowledge(ctx context.Context, channel, timestamp string) {
	item := slackapi.NewRefToMessage(channel, timestamp)
	if err := n.client.AddReactionContext(ctx, AckReaction, item); err != nil {
		n.logger.Debug("failed to add ack reaction", logging.Channel(channel), logging.Err(err))
	}
}

// Unacknowledge removes the ack reaction added by Acknowledge.
func (n *Notifier) Unacknowledge(ctx context.Context, channel, timestamp string) {
	item := slackapi.NewRefToMessage(channel, timestamp)
	if err := n.client.RemoveReactionContext(ctx, AckReaction, item); err != nil {
		n.logger.Debug("failed to remove ack reaction", logging.Channel(channel), logging.Err(err))
	}
}

func (n *Notifier) resolveChannel(channel string) string {
	if channel != "" {
		return channel
	}
	return n.defaultChannel
}

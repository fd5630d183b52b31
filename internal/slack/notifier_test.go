package slack

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	slackapi "github.com/slack-go/slack"
)

type fakeAPI struct {
	postedChannels []string
	postedOptions  [][]slackapi.MsgOption
	postErr        error

	added   []slackapi.ItemRef
	removed []slackapi.ItemRef
}

func (f *fakeAPI) PostMessageContext(_ context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if f.postErr != nil {
		return "", "", f.postErr
	}
	f.postedChannels = append(f.postedChannels, channelID)
	f.postedOptions = append(f.postedOptions, options)
	return channelID, "1724245920.000100", nil
}

func (f *fakeAPI) AddReactionContext(_ context.Context, _ string, item slackapi.ItemRef) error {
	f.added = append(f.added, item)
	return nil
}

func (f *fakeAPI) RemoveReactionContext(_ context.Context, _ string, item slackapi.ItemRef) error {
	f.removed = append(f.removed, item)
	return nil
}

func (f *fakeAPI) AuthTestContext(_ context.Context) (*slackapi.AuthTestResponse, error) {
	return &slackapi.AuthTestResponse{User: "bot", Team: "team"}, nil
}

func newTestNotifier(api api, defaultChannel string) *Notifier {
	return &Notifier{
		client:         api,
		defaultChannel: defaultChannel,
		logger:         slog.Default(),
	}
}

func TestNewNotifier_RequiresToken(t *testing.T) {
	_, err := NewNotifier(Config{})
	if err == nil {
		t.Fatal("expected error for missing bot token")
	}
}

func TestPostMessage_UsesDefaultChannel(t *testing.T) {
	fake := &fakeAPI{}
	n := newTestNotifier(fake, "C0DEFAULT")

	ts, err := n.PostMessage(context.Background(), "", "hello", "")
	if err != nil {
		t.Fatalf("PostMessage: %v", err)
	}
	if ts == "" {
		t.Error("expected a message timestamp")
	}
	if len(fake.postedChannels) != 1 || fake.postedChannels[0] != "C0DEFAULT" {
		t.Errorf("posted channels = %v, want [C0DEFAULT]", fake.postedChannels)
	}
}

func TestPostMessage_NoChannelConfigured(t *testing.T) {
	n := newTestNotifier(&fakeAPI{}, "")

	_, err := n.PostMessage(context.Background(), "", "hello", "")
	if err == nil {
		t.Fatal("expected error when no channel is available")
	}
}

func TestPostMessage_WrapsAPIError(t *testing.T) {
	fake := &fakeAPI{postErr: errors.New("channel_not_found")}
	n := newTestNotifier(fake, "C1")

	_, err := n.PostMessage(context.Background(), "C1", "hello", "")
	if err == nil || !strings.Contains(err.Error(), "channel_not_found") {
		t.Errorf("err = %v, want wrapped channel_not_found", err)
	}
}

func TestPostToolResult_TruncatesOversizedPayload(t *testing.T) {
	fake := &fakeAPI{}
	n := newTestNotifier(fake, "C1")

	payload := strings.Repeat("a", maxSnippetBytes+100)
	if _, err := n.PostToolResult(context.Background(), "C1", "result", payload, ""); err != nil {
		t.Fatalf("PostToolResult: %v", err)
	}
	// One message must still have been posted despite the oversized body.
	if len(fake.postedChannels) != 1 {
		t.Errorf("posted %d messages, want 1", len(fake.postedChannels))
	}
}

func TestAcknowledgeLifecycle(t *testing.T) {
	fake := &fakeAPI{}
	n := newTestNotifier(fake, "C1")

	ctx := context.Background()
	n.Acknowledge(ctx, "C1", "123.456")
	n.Unacknowledge(ctx, "C1", "123.456")

	if len(fake.added) != 1 || len(fake.removed) != 1 {
		t.Fatalf("reactions added=%d removed=%d, want 1 and 1", len(fake.added), len(fake.removed))
	}
	if fake.added[0].Channel != "C1" || fake.added[0].Timestamp != "123.456" {
		t.Errorf("ack item = %+v", fake.added[0])
	}
}

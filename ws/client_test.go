package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"openchat/domain/event"
)

func TestClient_Consume_FrameShape(t *testing.T) {
	req := require.New(t)
	client := NewClient(nil, slog.New(slog.DiscardHandler), 4)

	err := client.Consume(context.Background(), event.Typing{ChatID: "room", UserID: "alice"})
	req.NoError(err)

	var frame Frame
	req.NoError(json.Unmarshal(<-client.send, &frame))
	req.Equal("typing", frame.Event)
	req.JSONEq(`{"chatId":"room","userId":"alice"}`, string(frame.Data))
}

func TestClient_Consume_DropsWhenBufferFull(t *testing.T) {
	req := require.New(t)
	client := NewClient(nil, slog.New(slog.DiscardHandler), 1)
	ctx := context.Background()

	// The buffer holds one frame; the next is dropped, not blocked on
	req.NoError(client.Consume(ctx, event.Typing{ChatID: "room", UserID: "alice"}))
	err := client.Consume(ctx, event.Typing{ChatID: "room", UserID: "alice"})
	req.ErrorIs(err, errSlowConsumer)
}

func TestClient_Consume_AfterClose(t *testing.T) {
	req := require.New(t)
	client := NewClient(nil, slog.New(slog.DiscardHandler), 1)
	client.close()

	// A closed client swallows events silently
	req.NoError(client.Consume(context.Background(), event.Typing{ChatID: "room", UserID: "alice"}))
}

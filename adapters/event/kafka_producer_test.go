package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestPublishContentChanged(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaProducerClient{ContentEventsWriter: w, logger: logger.NewNopLogger()}
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	err := p.PublishContentChanged(context.Background(), service.ContentChanged{
		Action: service.ActionSaved, Kind: service.KindEvent, ID: "e1", OccurredAt: at,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "event", string(w.msgs[0].Key))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &raw))
	assert.Equal(t, "content.saved", raw["event_type"])
	assert.Equal(t, "e1", raw["id"])

	decoded, err := DecodeContentEvent(w.msgs[0].Value)
	require.NoError(t, err)
	assert.Equal(t, service.KindEvent, decoded.Kind)
	assert.True(t, at.Equal(decoded.OccurredAt))
}

func TestPublishContentChanged_WriterError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	p := &KafkaProducerClient{ContentEventsWriter: w, logger: logger.NewNopLogger()}

	err := p.PublishContentChanged(context.Background(), service.ContentChanged{Action: service.ActionDeleted, Kind: service.KindSocials})
	assert.ErrorContains(t, err, "broker down")
}

func TestDecodeContentEvent_RejectsUnknown(t *testing.T) {
	_, err := DecodeContentEvent([]byte(`{"event_type":"content.saved","kind":"post"}`))
	assert.Error(t, err)
	_, err = DecodeContentEvent([]byte(`{"event_type":"post.created","kind":"event"}`))
	assert.Error(t, err)
	_, err = DecodeContentEvent([]byte(`not json`))
	assert.Error(t, err)
}

package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []*Event
	err    error
	closed bool
}

func (r *recordingPublisher) Publish(_ context.Context, e *Event) error {
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingPublisher) Close() error {
	r.closed = true
	return r.err
}

func TestMultiPublishesToEveryPublisher(t *testing.T) {
	ok := &recordingPublisher{}
	failing := &recordingPublisher{err: errors.New("broker down")}
	m := Multi{failing, ok}

	err := m.Publish(context.Background(), &Event{EventType: TypeStatusChanged})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Len(t, ok.events, 1)
	assert.Len(t, failing.events, 1)

	_ = m.Close()
	assert.True(t, ok.closed)
	assert.True(t, failing.closed)
}

func TestMultiEmptyIsNoop(t *testing.T) {
	assert.NoError(t, Multi{}.Publish(context.Background(), &Event{}))
	assert.NoError(t, Noop().Publish(context.Background(), &Event{}))
}

func TestNewMessageKeysByTrackingNumber(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	msg, err := NewMessage(&Event{
		EventType:      TypeStatusChanged,
		TrackingNumber: "TRK-1",
		NewStatus:      "delivered",
		Timestamp:      ts,
	})
	require.NoError(t, err)

	assert.Equal(t, "TRK-1", string(msg.Key))
	assert.Equal(t, ts, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, TypeStatusChanged, string(msg.Headers[0].Value))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "delivered", decoded["new_status"])
	assert.NotContains(t, decoded, "previous_status")
}

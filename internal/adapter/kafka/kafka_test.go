package kafka

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/storm-kinematics/internal/domain"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("req-1"),
		Value:     []byte(`{"request_id":"req-1"}`),
		Topic:     "raw-wind-profiles",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("vad-collector")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("req-1"), raw.Key)
	assert.JSONEq(t, `{"request_id":"req-1"}`, string(raw.Value))
	assert.Equal(t, "raw-wind-profiles", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "vad-collector", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestMapOutputEventToMessage(t *testing.T) {
	event := domain.OutputEvent{
		Key:   []byte("req-1"),
		Value: []byte(`{"request_id":"req-1"}`),
		Headers: map[string]string{
			"site_id":     "KTLX",
			"analyzed_at": "2024-05-21T23:15:00Z",
		},
	}

	msg := mapOutputEventToMessage(event)

	assert.Equal(t, []byte("req-1"), msg.Key)
	assert.Equal(t, event.Value, msg.Value)
	assert.Equal(t, []kafkago.Header{
		{Key: "site_id", Value: []byte("KTLX")},
		{Key: "analyzed_at", Value: []byte("2024-05-21T23:15:00Z")},
	}, msg.Headers)
}

func TestMapOutputEventToMessage_NoHeaders(t *testing.T) {
	msg := mapOutputEventToMessage(domain.OutputEvent{Key: []byte("req-2")})
	assert.Empty(t, msg.Headers)
}

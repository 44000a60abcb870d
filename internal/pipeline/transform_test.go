package pipeline_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-kinematics/internal/domain"
	"github.com/couchcryptid/storm-kinematics/internal/pipeline"
)

func profileEvent(t *testing.T, rec domain.RawProfileRecord) domain.RawEvent {
	t.Helper()
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	return domain.RawEvent{Key: []byte(rec.RequestID), Value: data}
}

func veeringRecord(requestID string) domain.RawProfileRecord {
	return domain.RawProfileRecord{
		RequestID: requestID,
		SiteID:    "KTLX",
		Levels: []domain.RawWindLevel{
			{Height: "300", Direction: "160", Speed: "15"},
			{Height: "1000", Direction: "175", Speed: "20"},
			{Height: "2000", Direction: "200", Speed: "25"},
			{Height: "4000", Direction: "240", Speed: "35"},
			{Height: "6000", Direction: "270", Speed: "45"},
		},
		SurfaceDirection: "150",
		SurfaceSpeed:     "8",
	}
}

func TestKinematicsTransformer_Transform(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2024, time.May, 21, 23, 15, 0, 0, time.UTC))
	domain.SetClock(fakeClock)
	t.Cleanup(func() { domain.SetClock(nil) })

	tfm := pipeline.NewTransformer(domain.DefaultAnalysisConfig(), slog.Default(), newTestMetrics())

	t.Run("produces keyed result", func(t *testing.T) {
		out, err := tfm.Transform(context.Background(), profileEvent(t, veeringRecord("req-10")))
		require.NoError(t, err)

		assert.Equal(t, []byte("req-10"), out.Key)
		assert.Equal(t, "KTLX", out.Headers["site_id"])
		assert.Equal(t, "2024-05-21T23:15:00Z", out.Headers["analyzed_at"])

		var result domain.AnalysisResult
		require.NoError(t, json.Unmarshal(out.Value, &result))
		assert.Equal(t, "req-10", result.RequestID)
		assert.NotEmpty(t, result.Points)
		assert.NotNil(t, result.Parameters.SRH3Km)
		assert.NotNil(t, result.Parameters.Bunkers)
	})

	t.Run("assigns request id when missing", func(t *testing.T) {
		out, err := tfm.Transform(context.Background(), profileEvent(t, veeringRecord("")))
		require.NoError(t, err)

		id, parseErr := uuid.Parse(string(out.Key))
		require.NoError(t, parseErr)
		assert.NotEqual(t, uuid.Nil, id)
	})

	t.Run("malformed json is an error", func(t *testing.T) {
		_, err := tfm.Transform(context.Background(), domain.RawEvent{Value: []byte("not json")})
		assert.Error(t, err)
	})

	t.Run("too few levels is an error", func(t *testing.T) {
		rec := veeringRecord("req-11")
		rec.Levels = rec.Levels[:1]
		rec.SurfaceDirection = ""
		rec.SurfaceSpeed = ""

		_, err := tfm.Transform(context.Background(), profileEvent(t, rec))
		require.ErrorIs(t, err, domain.ErrInsufficientData)
	})
}

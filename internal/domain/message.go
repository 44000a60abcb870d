package domain

import (
	"context"
	"time"
)

// RawWindLevel is one level of the flat JSON profile the collector publishes.
// All fields are strings in the source data; Direction may be the "VRB"
// sentinel for a variable surface wind folded into the profile upstream.
type RawWindLevel struct {
	Height    string `json:"height"`    // metres above radar level
	Direction string `json:"direction"` // degrees, or "VRB"
	Speed     string `json:"speed"`     // knots
}

// RawProfileRecord is the source-topic message shape: a decoded VAD wind
// profile plus the operator inputs captured by the selection UI.
type RawProfileRecord struct {
	RequestID string         `json:"request_id"`
	SiteID    string         `json:"site_id"`
	Levels    []RawWindLevel `json:"levels"`

	// Optional explicit storm motion; both fields or neither.
	StormDirection string `json:"storm_direction"`
	StormSpeed     string `json:"storm_speed"`

	// Optional METAR surface wind; both fields or neither. "VRB" allowed.
	SurfaceDirection string `json:"surface_direction"`
	SurfaceSpeed     string `json:"surface_speed"`

	Mover         string `json:"mover"` // brm/blm/mnw or long forms; empty = right-mover
	IncludeHalfKm string `json:"include_half_km"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

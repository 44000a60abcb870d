package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// variableDirection is the sentinel a METAR report uses for a wind with no
// steady direction.
const variableDirection = "VRB"

// ParseRawRequest deserializes a RawEvent's value into an AnalysisRequest.
// Malformed JSON or unparseable numerics fail the whole message: by the time
// a record reaches this service the collector has already shaped it, so a
// record that cannot even be read numerically is a poison pill rather than a
// degraded profile. Range validation happens later, in NormalizeProfile.
func ParseRawRequest(raw RawEvent) (AnalysisRequest, error) {
	var rec RawProfileRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return AnalysisRequest{}, fmt.Errorf("parse raw request: %w", err)
	}

	observations := make([]WindObservation, len(rec.Levels))
	for i, level := range rec.Levels {
		obs, err := parseLevel(level)
		if err != nil {
			return AnalysisRequest{}, fmt.Errorf("parse level %d: %w", i, err)
		}
		observations[i] = obs
	}

	req := AnalysisRequest{
		RequestID:    rec.RequestID,
		SiteID:       rec.SiteID,
		Observations: observations,
		Mover:        ParseMover(rec.Mover),
	}

	motion, err := parseOptionalMotion(rec.StormDirection, rec.StormSpeed)
	if err != nil {
		return AnalysisRequest{}, fmt.Errorf("parse storm motion: %w", err)
	}
	req.StormMotion = motion

	surface, err := parseOptionalSurface(rec.SurfaceDirection, rec.SurfaceSpeed)
	if err != nil {
		return AnalysisRequest{}, fmt.Errorf("parse surface wind: %w", err)
	}
	req.SurfaceWind = surface

	if rec.IncludeHalfKm != "" {
		include, err := strconv.ParseBool(rec.IncludeHalfKm)
		if err != nil {
			return AnalysisRequest{}, fmt.Errorf("parse include_half_km: %w", err)
		}
		req.IncludeHalfKm = include
	}

	return req, nil
}

func parseLevel(level RawWindLevel) (WindObservation, error) {
	height, err := parseFloat(level.Height)
	if err != nil {
		return WindObservation{}, fmt.Errorf("height: %w", err)
	}
	speed, err := parseFloat(level.Speed)
	if err != nil {
		return WindObservation{}, fmt.Errorf("speed: %w", err)
	}

	obs := WindObservation{HeightM: height, SpeedKt: speed}
	if strings.EqualFold(strings.TrimSpace(level.Direction), variableDirection) {
		obs.Variable = true
		return obs, nil
	}

	direction, err := parseFloat(level.Direction)
	if err != nil {
		return WindObservation{}, fmt.Errorf("direction: %w", err)
	}
	obs.DirectionDeg = direction
	return obs, nil
}

// parseOptionalMotion reads a direction/speed pair that must be supplied
// together or not at all.
func parseOptionalMotion(direction, speed string) (*StormMotion, error) {
	direction = strings.TrimSpace(direction)
	speed = strings.TrimSpace(speed)
	if direction == "" && speed == "" {
		return nil, nil
	}
	if direction == "" || speed == "" {
		return nil, fmt.Errorf("direction and speed must be supplied together")
	}

	dir, err := parseFloat(direction)
	if err != nil {
		return nil, fmt.Errorf("direction: %w", err)
	}
	spd, err := parseFloat(speed)
	if err != nil {
		return nil, fmt.Errorf("speed: %w", err)
	}
	return &StormMotion{DirectionDeg: dir, SpeedKt: spd}, nil
}

func parseOptionalSurface(direction, speed string) (*WindObservation, error) {
	direction = strings.TrimSpace(direction)
	speed = strings.TrimSpace(speed)
	if direction == "" && speed == "" {
		return nil, nil
	}
	if direction == "" || speed == "" {
		return nil, fmt.Errorf("direction and speed must be supplied together")
	}

	obs, err := parseLevel(RawWindLevel{Height: "0", Direction: direction, Speed: speed})
	if err != nil {
		return nil, err
	}
	return &obs, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

// SerializeResult marshals an AnalysisResult into an OutputEvent keyed by the
// request ID, with routing metadata in the headers.
func SerializeResult(result AnalysisResult) (OutputEvent, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize analysis result: %w", err)
	}
	return OutputEvent{
		Key:   []byte(result.RequestID),
		Value: data,
		Headers: map[string]string{
			"site_id":     result.SiteID,
			"analyzed_at": result.AnalyzedAt.Format(time.RFC3339),
		},
	}, nil
}

package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/couchcryptid/storm-kinematics/internal/domain"
	"github.com/couchcryptid/storm-kinematics/internal/observability"
)

// KinematicsTransformer implements Transformer by running the storm-relative
// kinematics analysis on each decoded profile request.
type KinematicsTransformer struct {
	cfg     domain.AnalysisConfig
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a KinematicsTransformer with the given analysis
// policy.
func NewTransformer(cfg domain.AnalysisConfig, logger *slog.Logger, metrics *observability.Metrics) *KinematicsTransformer {
	return &KinematicsTransformer{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}
}

func (t *KinematicsTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	req, err := domain.ParseRawRequest(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	// Upstream collectors occasionally omit the request ID; results still
	// need a stable key for the sink topic.
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	t.metrics.ProfileLevels.Observe(float64(len(req.Observations)))

	result, err := domain.Analyze(req, t.cfg)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	for _, warning := range result.Warnings {
		t.metrics.AnalysisWarnings.WithLabelValues(warning).Inc()
		t.logger.Debug("analysis warning",
			"request_id", result.RequestID,
			"site_id", result.SiteID,
			"warning", warning,
		)
	}

	return domain.SerializeResult(result)
}

package oracle

import (
	"context"
	"time"

	"github.com/navi-hq/navi/internal/common"
	"github.com/navi-hq/navi/internal/service"
)

// Resilient wraps a provider-backed Oracle with bounded retry. When both
// attempts fail, the judgment degrades to the Neutral defaults instead of
// surfacing an error, so a flaky provider never aborts a scoring run.
type Resilient struct {
	inner   Oracle
	neutral Neutral
	opts    service.RetryOptions
}

var _ Oracle = (*Resilient)(nil)

// NewResilient wraps an Oracle with the standard retry policy.
func NewResilient(inner Oracle) *Resilient {
	return &Resilient{
		inner: inner,
		opts: service.RetryOptions{
			MaxAttempts:  2,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     10 * time.Second,
			Multiplier:   2.0,
		},
	}
}

func (r *Resilient) JudgeContempt(ctx context.Context, text, convContext string) (ContemptJudgment, error) {
	var out ContemptJudgment
	err := common.WithRetry(ctx, func() error {
		var callErr error
		out, callErr = r.inner.JudgeContempt(ctx, text, convContext)
		return callErr
	}, r.opts)
	if err != nil {
		common.LogDebug("contempt judgment degraded to neutral", common.Fields{"error": err.Error()})
		return r.neutral.JudgeContempt(ctx, text, convContext)
	}
	return out, nil
}

func (r *Resilient) JudgeResponseQuality(ctx context.Context, original, response string) (ResponseQualityJudgment, error) {
	var out ResponseQualityJudgment
	err := common.WithRetry(ctx, func() error {
		var callErr error
		out, callErr = r.inner.JudgeResponseQuality(ctx, original, response)
		return callErr
	}, r.opts)
	if err != nil {
		common.LogDebug("response quality judgment degraded to neutral", common.Fields{"error": err.Error()})
		return r.neutral.JudgeResponseQuality(ctx, original, response)
	}
	return out, nil
}

func (r *Resilient) JudgeRepair(ctx context.Context, text, conflictContext string) (RepairJudgment, error) {
	var out RepairJudgment
	err := common.WithRetry(ctx, func() error {
		var callErr error
		out, callErr = r.inner.JudgeRepair(ctx, text, conflictContext)
		return callErr
	}, r.opts)
	if err != nil {
		common.LogDebug("repair judgment degraded to neutral", common.Fields{"error": err.Error()})
		return r.neutral.JudgeRepair(ctx, text, conflictContext)
	}
	return out, nil
}

func (r *Resilient) JudgeVulnerability(ctx context.Context, text, convContext string) (VulnerabilityJudgment, error) {
	var out VulnerabilityJudgment
	err := common.WithRetry(ctx, func() error {
		var callErr error
		out, callErr = r.inner.JudgeVulnerability(ctx, text, convContext)
		return callErr
	}, r.opts)
	if err != nil {
		common.LogDebug("vulnerability judgment degraded to neutral", common.Fields{"error": err.Error()})
		return r.neutral.JudgeVulnerability(ctx, text, convContext)
	}
	return out, nil
}

func (r *Resilient) JudgeSharedMeaning(ctx context.Context, text, convContext string) (SharedMeaningJudgment, error) {
	var out SharedMeaningJudgment
	err := common.WithRetry(ctx, func() error {
		var callErr error
		out, callErr = r.inner.JudgeSharedMeaning(ctx, text, convContext)
		return callErr
	}, r.opts)
	if err != nil {
		common.LogDebug("shared meaning judgment degraded to neutral", common.Fields{"error": err.Error()})
		return r.neutral.JudgeSharedMeaning(ctx, text, convContext)
	}
	return out, nil
}

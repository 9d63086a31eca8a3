// Package pipeline provides the high-level orchestration of the dynamic UI
// generation flow: route -> normalize -> analyze -> propose -> validate ->
// render, with state transitions recorded in the session store.
//
// The pipeline must always produce something renderable: search failure
// degrades to demo data behind a banner, LLM failure degrades to the
// deterministic fallback layout, and zero records render the empty state.
// A blank page is a bug.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anandv/hrms-dashboard/internal/analyze"
	"github.com/anandv/hrms-dashboard/internal/errkind"
	"github.com/anandv/hrms-dashboard/internal/layout"
	"github.com/anandv/hrms-dashboard/internal/mockdata"
	"github.com/anandv/hrms-dashboard/internal/observability"
	"github.com/anandv/hrms-dashboard/internal/render"
	"github.com/anandv/hrms-dashboard/internal/repair"
	"github.com/anandv/hrms-dashboard/internal/router"
	"github.com/anandv/hrms-dashboard/internal/store"
	"github.com/anandv/hrms-dashboard/internal/types"
)

// DemoDataBanner is the non-blocking notice shown when search fails and the
// shipped fixture is rendered instead.
const DemoDataBanner = "Using demo data"

// Pipeline ties the stages together for one session.
type Pipeline struct {
	router   *router.Router
	proposer *layout.Proposer
	renderer *render.Renderer
	store    *store.Store
	log      *logrus.Logger
}

// New assembles a pipeline.
func New(r *router.Router, proposer *layout.Proposer, renderer *render.Renderer, st *store.Store, log *logrus.Logger) *Pipeline {
	return &Pipeline{router: r, proposer: proposer, renderer: renderer, store: st, log: log}
}

// Store exposes the session store for serving surfaces.
func (p *Pipeline) Store() *store.Store { return p.store }

// Renderer exposes the session renderer for manager navigation.
func (p *Pipeline) Renderer() *render.Renderer { return p.renderer }

// Run executes the pipeline for one query and returns the resulting store
// snapshot. Greetings short-circuit before any state transition: the store
// stays Idle and no backend is touched.
func (p *Pipeline) Run(ctx context.Context, text string) store.Snapshot {
	query := types.NewQuery(text)

	if router.IsGreeting(text) {
		result, _ := p.router.Route(ctx, query)
		snap := p.store.Snapshot()
		snap.View = &render.View{Assistant: result.Greeting}
		return snap
	}

	epoch := p.store.Submit(query)
	stageLog := observability.StageLogger(p.log, epoch, "pipeline")

	start := time.Now()
	routed, err := p.router.Route(ctx, query)
	observability.StageDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())

	if err != nil {
		return p.failToDemoData(epoch, routed.Intent, err, stageLog)
	}
	observability.StageTotal.WithLabelValues("search", observability.OutcomeOK).Inc()

	if !p.store.OnNormalized(epoch, routed.Canonical) {
		stageLog.Debug("pipeline superseded after search")
		return p.store.Snapshot()
	}

	analysis := analyze.Analyze(routed.Canonical, routed.Intent)
	if !p.store.OnAnalyzed(epoch, analysis) {
		stageLog.Debug("pipeline superseded after analysis")
		return p.store.Snapshot()
	}

	var proposal *types.Layout
	if analysis.ItemCount == 0 {
		// Empty result set: deterministic empty state, no LLM round trip.
		proposal = layout.Fallback(analysis)
	} else {
		proposal, _ = p.proposer.Propose(ctx, query, analysis, routed.Canonical, epoch)
	}

	validated := repair.Validate(proposal, analysis)
	view := p.renderer.Render(validated, routed.Canonical)

	if !p.store.OnLayout(epoch, validated, view) {
		stageLog.Debug("pipeline superseded after layout")
		return p.store.Snapshot()
	}

	stageLog.WithFields(logrus.Fields{
		"intent":     analysis.QueryIntent,
		"records":    analysis.ItemCount,
		"components": len(validated.Components),
		"mock":       routed.UsedMock,
	}).Info("pipeline ready")
	return p.store.Snapshot()
}

// failToDemoData handles search failure of any kind: the shipped demo
// fixture is rendered as a table under the degraded layout, the state
// enters Error, and the view carries the demo-data banner.
func (p *Pipeline) failToDemoData(epoch uint64, intent types.Intent, err error, stageLog *logrus.Entry) store.Snapshot {
	kindErr := asKindError(err)
	stageLog.WithError(err).WithField("kind", kindErr.Kind).Warn("search failed, switching to demo data")
	observability.StageTotal.WithLabelValues("search", observability.OutcomeError).Inc()
	observability.FallbackTotal.WithLabelValues("search_" + string(kindErr.Kind)).Inc()

	demo := mockdata.DemoResult()
	analysis := analyze.Analyze(demo, intent)
	validated := repair.Validate(layout.ErrorFallback(analysis), analysis)
	view := p.renderer.Render(validated, demo)
	view.Banner = DemoDataBanner

	p.store.OnError(epoch, kindErr, demo, validated, view)
	return p.store.Snapshot()
}

func asKindError(err error) *errkind.Error {
	var kindErr *errkind.Error
	if errors.As(err, &kindErr) {
		return kindErr
	}
	return errkind.Transport("search", "unclassified failure", err)
}

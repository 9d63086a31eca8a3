package layout

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/anandv/hrms-dashboard/internal/llm"
	"github.com/anandv/hrms-dashboard/internal/observability"
	"github.com/anandv/hrms-dashboard/internal/prompts"
	"github.com/anandv/hrms-dashboard/internal/schemas"
	"github.com/anandv/hrms-dashboard/internal/types"
)

// Prompt bounds. Temperature stays low for deterministic layouts.
const (
	proposalMaxTokens   = 1500
	proposalTemperature = 0.2
)

// Proposer asks the LLM for a layout proposal. The LLM endpoint sits behind
// a circuit breaker: once it has failed repeatedly, proposals short-circuit
// to the deterministic fallback until the breaker half-opens.
type Proposer struct {
	client         llm.Client
	breaker        *gobreaker.CircuitBreaker
	log            *logrus.Logger
	timeout        time.Duration
	maxPromptBytes int
}

// NewProposer creates a Proposer over the given client. A nil client is
// allowed and always yields the fallback layout.
func NewProposer(client llm.Client, timeout time.Duration, maxPromptBytes int, log *logrus.Logger) *Proposer {
	return &Proposer{
		client: client,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "llm",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
		log:            log,
		timeout:        timeout,
		maxPromptBytes: maxPromptBytes,
	}
}

// Propose returns a layout proposal for the analysis and data. It never
// fails: all error paths degrade to the deterministic fallback. The second
// return value reports whether the model produced the layout.
func (p *Proposer) Propose(ctx context.Context, query types.Query, analysis types.DataAnalysis, result *types.CanonicalResult, epoch uint64) (*types.Layout, bool) {
	stageLog := observability.StageLogger(p.log, epoch, "propose")

	if p.client == nil {
		observability.FallbackTotal.WithLabelValues("no_client").Inc()
		return Fallback(analysis), false
	}

	start := time.Now()
	raw, err := p.breaker.Execute(func() (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		return p.client.Complete(callCtx, llm.Request{
			System:      prompts.MustGet("layout.json", "layout-system"),
			User:        p.buildUserPrompt(query, analysis, result),
			MaxTokens:   proposalMaxTokens,
			Temperature: proposalTemperature,
		})
	})
	observability.StageDuration.WithLabelValues("propose").Observe(time.Since(start).Seconds())

	if err != nil {
		reason := "llm_error"
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			reason = "breaker_open"
		}
		stageLog.WithError(err).Warn("LLM proposal failed, using fallback layout")
		observability.FallbackTotal.WithLabelValues(reason).Inc()
		observability.StageTotal.WithLabelValues("propose", observability.OutcomeFallback).Inc()
		return Fallback(analysis), false
	}

	proposal, err := ParseProposal(raw.(string))
	if err != nil {
		stageLog.WithError(err).Warn("LLM proposal unparseable, using fallback layout")
		observability.FallbackTotal.WithLabelValues("parse_error").Inc()
		observability.StageTotal.WithLabelValues("propose", observability.OutcomeFallback).Inc()
		return Fallback(analysis), false
	}

	if doc, err := json.Marshal(proposal); err == nil {
		if err := schemas.ValidateLayoutProposal(string(doc)); err != nil {
			stageLog.WithError(err).Warn("LLM proposal failed schema validation, using fallback layout")
			observability.FallbackTotal.WithLabelValues("schema_error").Inc()
			observability.StageTotal.WithLabelValues("propose", observability.OutcomeFallback).Inc()
			return Fallback(analysis), false
		}
	}

	decoded, err := decodeProposal(proposal)
	if err != nil {
		stageLog.WithError(err).Warn("LLM proposal not layout-shaped, using fallback layout")
		observability.FallbackTotal.WithLabelValues("shape_error").Inc()
		observability.StageTotal.WithLabelValues("propose", observability.OutcomeFallback).Inc()
		return Fallback(analysis), false
	}

	observability.StageTotal.WithLabelValues("propose", observability.OutcomeOK).Inc()
	return decoded, true
}

// buildUserPrompt conveys the analysis facts and the literal canonical
// result, truncated so oversized payloads cannot blow up prompt cost.
func (p *Proposer) buildUserPrompt(query types.Query, analysis types.DataAnalysis, result *types.CanonicalResult) string {
	payload, err := json.Marshal(result)
	if err != nil {
		payload = []byte("{}")
	}
	if p.maxPromptBytes > 0 && len(payload) > p.maxPromptBytes {
		payload = append(payload[:p.maxPromptBytes], []byte("... (truncated)")...)
	}

	template := prompts.MustGet("layout.json", "layout-user")
	return prompts.Format(template, map[string]string{
		"Query":          query.Text,
		"Intent":         string(analysis.QueryIntent),
		"ItemCount":      strconv.Itoa(analysis.ItemCount),
		"Complexity":     string(analysis.DataComplexity),
		"VariedStatuses": strconv.FormatBool(analysis.HasVariedStatuses),
		"Departments":    strings.Join(analysis.Departments, ", "),
		"Payload":        string(payload),
	})
}

// decodeProposal converts the decoded proposal object into the layout
// envelope. Proposals may nest the grid under a "layout" key or use the
// envelope directly; dataMapping may ride at either level.
func decodeProposal(proposal map[string]any) (*types.Layout, error) {
	grid := proposal
	if nested, ok := proposal["layout"].(map[string]any); ok {
		grid = nested
	}

	raw, err := json.Marshal(grid)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode proposal: %w", err)
	}
	var l types.Layout
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("proposal does not decode as a layout: %w", err)
	}

	if l.DataMapping == nil {
		if mapping, ok := proposal["dataMapping"].(map[string]any); ok {
			l.DataMapping = make(map[string]string, len(mapping))
			for k, v := range mapping {
				if s, ok := v.(string); ok {
					l.DataMapping[k] = s
				}
			}
		}
	}
	return &l, nil
}

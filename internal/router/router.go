// Package router classifies incoming queries and dispatches them to the
// search backend, the mock provider, or a canned greeting. It sits in front
// of the pipeline; everything downstream works on its canonical output.
package router

import (
	"context"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/anandv/hrms-dashboard/internal/analyze"
	"github.com/anandv/hrms-dashboard/internal/mockdata"
	"github.com/anandv/hrms-dashboard/internal/normalize"
	"github.com/anandv/hrms-dashboard/internal/prompts"
	"github.com/anandv/hrms-dashboard/internal/types"
)

// greetings are matched as an exact query or a leading token.
var greetings = []string{
	"good morning", "good afternoon", "good evening",
	"hello", "hey", "hi",
}

// SearchBackend is the remote search dependency.
type SearchBackend interface {
	Search(ctx context.Context, query string) (map[string]any, error)
}

// Result is the router's dispatch outcome. Exactly one of Greeting or
// Canonical is meaningful.
type Result struct {
	Greeting  string
	Canonical *types.CanonicalResult
	Intent    types.Intent
	UsedMock  bool
}

// Router dispatches classified queries.
type Router struct {
	backend SearchBackend
	log     *logrus.Logger
}

// New creates a Router over the given backend.
func New(backend SearchBackend, log *logrus.Logger) *Router {
	return &Router{backend: backend, log: log}
}

// Route classifies the query and dispatches it. Classification rules are
// evaluated in order; first match wins:
//
//  1. greeting -> canned reply, no backend call
//  2. project-requirement marker -> mock ranked provider
//  3. otherwise -> search backend, normalized
func (r *Router) Route(ctx context.Context, query types.Query) (Result, error) {
	text := strings.TrimSpace(query.Text)

	if IsGreeting(text) {
		return Result{
			Greeting: prompts.MustGet("layout.json", "greeting-reply"),
			Intent:   types.IntentGeneralSearch,
		}, nil
	}

	if analyze.IsProjectRequirement(text) {
		// The ranked-matching branch ships a fixture because the real
		// backend does not support ranked results yet.
		r.log.WithField("stage", "router").Debug("dispatching to mock ranked provider")
		return Result{
			Canonical: mockdata.RankedResult(),
			Intent:    types.IntentProjectRequirement,
			UsedMock:  true,
		}, nil
	}

	body, err := r.backend.Search(ctx, text)
	if err != nil {
		return Result{Intent: analyze.ClassifyIntent(text)}, err
	}
	return Result{
		Canonical: normalize.Normalize(body),
		Intent:    analyze.ClassifyIntent(text),
	}, nil
}

// IsGreeting reports whether the query is a greeting, matched exactly or as
// a leading token followed by a non-letter.
func IsGreeting(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, g := range greetings {
		if lower == g {
			return true
		}
		if strings.HasPrefix(lower, g) {
			rest := []rune(lower[len(g):])
			if len(rest) > 0 && !unicode.IsLetter(rest[0]) {
				return true
			}
		}
	}
	return false
}

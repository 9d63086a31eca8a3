// Package layout hosts the layout proposer: it asks the LLM for a layout
// proposal, parses its output leniently, and owns the deterministic fallback
// used whenever the model cannot be trusted or reached.
package layout

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/anandv/hrms-dashboard/internal/errkind"
)

// Small instruct-tuned models emit unquoted keys, unquoted string values and
// trailing commas frequently. The repair strategy is deliberately bounded:
// fence stripping, balanced-brace extraction, then three string-rewrite
// passes. Anything still unparseable falls back; this is not a JSON5 parser.
var (
	reUnquotedKey = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	// Bare values may carry dots, brackets and dashes (dataField paths).
	reUnquotedValue  = regexp.MustCompile(`:\s*([A-Za-z_][A-Za-z0-9_.\[\]/ -]*[A-Za-z0-9_.\[\]])\s*([,}\]])`)
	reTrailingComma  = regexp.MustCompile(`,\s*([}\]])`)
	jsonBareKeywords = map[string]bool{"true": true, "false": true, "null": true}
)

// ParseProposal turns raw LLM output into a decoded proposal object.
// The error is classified KindParse when no repair pass yields valid JSON.
func ParseProposal(raw string) (map[string]any, error) {
	text := extractBalancedObject(stripFence(raw))
	if text == "" {
		return nil, errkind.Parse("layout", "no JSON object in LLM output", nil)
	}

	if obj, ok := tryDecode(text); ok {
		return obj, nil
	}

	// Pass 1: quote bare keys.
	text = reUnquotedKey.ReplaceAllString(text, `$1"$2":`)
	if obj, ok := tryDecode(text); ok {
		return obj, nil
	}

	// Pass 2: quote bare string values, leaving JSON keywords alone.
	text = reUnquotedValue.ReplaceAllStringFunc(text, func(match string) string {
		sub := reUnquotedValue.FindStringSubmatch(match)
		value, tail := sub[1], sub[2]
		if jsonBareKeywords[strings.TrimSpace(value)] {
			return match
		}
		return `: "` + strings.TrimSpace(value) + `"` + tail
	})
	if obj, ok := tryDecode(text); ok {
		return obj, nil
	}

	// Pass 3: strip trailing commas.
	text = reTrailingComma.ReplaceAllString(text, `$1`)
	if obj, ok := tryDecode(text); ok {
		return obj, nil
	}

	return nil, errkind.Parse("layout", "LLM output not JSON after lenient repair", nil)
}

// stripFence drops a surrounding markdown code fence, tolerating a json
// language tag glued to the opening backticks. Anything else on the opening
// line is left for the balanced-brace extractor to sort out.
func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	if end := strings.LastIndex(text, "```"); end >= 0 {
		text = text[:end]
	}
	return strings.TrimSpace(text)
}

func tryDecode(text string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// extractBalancedObject returns the first balanced {...} substring,
// honoring string literals and escapes. Returns "" when none closes.
func extractBalancedObject(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}
	return ""
}

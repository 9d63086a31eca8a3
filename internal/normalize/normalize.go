// Package normalize collapses the heterogeneous search payload shapes into
// the single canonical result shape downstream stages depend on.
//
// Recognized input shapes, tried in order:
//
//  1. {database_results: {select_employees_0: {data: [...]}}}
//  2. {data: {database_results: {select_employees_0: {data: [...]}}}}
//  3. {data: [...]}
//  4. [...] (bare sequence)
//  5. an intermediate data object carrying {rows: [...]}
//
// Anything else yields a canonical result with an empty sequence rather than
// an error; the renderer shows the empty state.
package normalize

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/anandv/hrms-dashboard/internal/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Normalize reduces an arbitrary decoded payload to the canonical shape.
// It is idempotent: normalizing an already-canonical payload is a no-op.
func Normalize(payload any) *types.CanonicalResult {
	switch v := payload.(type) {
	case nil:
		return types.NewCanonicalResult(nil)
	case *types.CanonicalResult:
		if v == nil {
			return types.NewCanonicalResult(nil)
		}
		return types.NewCanonicalResult(v.Records())
	case []any:
		return types.NewCanonicalResult(toRecords(v))
	case map[string]any:
		if recs, ok := fromCanonicalMap(v); ok {
			return types.NewCanonicalResult(recs)
		}
		if inner, ok := v["data"]; ok {
			switch data := inner.(type) {
			case map[string]any:
				// One wrapped level, or a rows-bearing data object.
				if recs, ok := fromCanonicalMap(data); ok {
					return types.NewCanonicalResult(recs)
				}
				if rows, ok := data["rows"].([]any); ok {
					return types.NewCanonicalResult(toRecords(rows))
				}
			case []any:
				return types.NewCanonicalResult(toRecords(data))
			}
		}
		return types.NewCanonicalResult(nil)
	case []types.EmployeeRecord:
		return types.NewCanonicalResult(v)
	}
	return types.NewCanonicalResult(nil)
}

// NormalizeRaw decodes raw JSON and normalizes it. Undecodable input maps to
// the empty canonical shape, consistent with Normalize.
func NormalizeRaw(raw []byte) *types.CanonicalResult {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return types.NewCanonicalResult(nil)
	}
	return Normalize(payload)
}

// fromCanonicalMap extracts the record sequence when m already carries the
// canonical path, honoring the rows unwrap at the leaf.
func fromCanonicalMap(m map[string]any) ([]types.EmployeeRecord, bool) {
	db, ok := m["database_results"].(map[string]any)
	if !ok {
		return nil, false
	}
	sel, ok := db["select_employees_0"].(map[string]any)
	if !ok {
		// A database_results object without the expected block still counts
		// as canonical intent; treat as empty.
		return []types.EmployeeRecord{}, true
	}
	switch data := sel["data"].(type) {
	case []any:
		return toRecords(data), true
	case map[string]any:
		if rows, ok := data["rows"].([]any); ok {
			return toRecords(rows), true
		}
	}
	return []types.EmployeeRecord{}, true
}

// toRecords keeps only object entries of a sequence; scalar entries are
// dropped since they cannot carry employee fields.
func toRecords(seq []any) []types.EmployeeRecord {
	records := make([]types.EmployeeRecord, 0, len(seq))
	for _, item := range seq {
		if m, ok := item.(map[string]any); ok {
			records = append(records, types.EmployeeRecord(m))
		}
	}
	return records
}

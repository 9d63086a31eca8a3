// Package mockdata ships the deterministic fixtures used when the search
// backend is unavailable and for the project-requirement branch, which
// exercises ranked matching the real backend does not yet support.
package mockdata

import "github.com/anandv/hrms-dashboard/internal/types"

// DemoRecords returns the two-record demo dataset rendered behind the
// "Using demo data" banner after a search failure.
func DemoRecords() []types.EmployeeRecord {
	return []types.EmployeeRecord{
		{
			"employee_id":         "E10001",
			"display_name":        "Arun Kumar",
			"first_name":          "Arun",
			"last_name":           "Kumar",
			"designation":         "Senior Software Engineer",
			"tech_group":          "Embedded",
			"employee_department": "Engineering",
			"emp_location":        "Chennai",
			"rm_id":               "E10002",
			"rm_name":             "Priya Sharma",
			"total_exp":           "7.5 years",
			"vvdn_exp":            "4 years",
			"deployment":          "billable",
			"employee_status":     "Active",
			"skill_set":           "C, C++, Linux, RTOS",
		},
		{
			"employee_id":         "E10002",
			"display_name":        "Priya Sharma",
			"first_name":          "Priya",
			"last_name":           "Sharma",
			"designation":         "Engineering Manager",
			"tech_group":          "Embedded",
			"employee_department": "Engineering",
			"emp_location":        "Chennai",
			"rm_id":               "",
			"rm_name":             "",
			"total_exp":           "12 years",
			"vvdn_exp":            "8 years",
			"deployment":          "billable",
			"employee_status":     "Active",
			"skill_set":           "C++, Architecture, Team Leadership",
		},
	}
}

// RankedCandidates returns the fixture for the project-requirement branch:
// candidates with a 0..100 match score and a short reason, unsorted so the
// renderer's score ordering is observable.
func RankedCandidates() []types.EmployeeRecord {
	return []types.EmployeeRecord{
		{
			"employee_id":         "E20014",
			"display_name":        "Sneha Reddy",
			"designation":         "Software Engineer",
			"employee_department": "Web",
			"emp_location":        "Bangalore",
			"employee_status":     "Freepool",
			"deployment":          "free",
			"skill_set":           "Angular, TypeScript, RxJS",
			"total_exp":           "3 years",
			"score":               float64(62),
			"reason":              "Solid Angular base, limited production ownership",
		},
		{
			"employee_id":         "E20003",
			"display_name":        "Rahul Verma",
			"designation":         "Senior Frontend Engineer",
			"employee_department": "Web",
			"emp_location":        "Noida",
			"employee_status":     "Freepool",
			"deployment":          "free",
			"skill_set":           "Angular, TypeScript, NgRx, REST",
			"total_exp":           "6 years",
			"score":               float64(88),
			"reason":              "Six years of Angular with state management depth",
		},
		{
			"employee_id":         "E20031",
			"display_name":        "Mohammed Irfan",
			"designation":         "Frontend Engineer",
			"employee_department": "Web",
			"emp_location":        "Kochi",
			"employee_status":     "Active",
			"deployment":          "billable",
			"employee_status_note": "rolls off current project next month",
			"skill_set":           "Angular, JavaScript, CSS",
			"total_exp":           "4 years",
			"score":               float64(74),
			"reason":              "Strong Angular delivery record, available soon",
		},
		{
			"employee_id":         "E20047",
			"display_name":        "Kavya Nair",
			"designation":         "UI Developer",
			"employee_department": "Web",
			"emp_location":        "Bangalore",
			"employee_status":     "Freepool",
			"deployment":          "free",
			"skill_set":           "React, JavaScript, HTML",
			"total_exp":           "2.5 years",
			"score":               float64(41),
			"reason":              "Frontend experience but no Angular exposure",
		},
	}
}

// DemoResult wraps DemoRecords in the canonical shape.
func DemoResult() *types.CanonicalResult {
	return types.NewCanonicalResult(DemoRecords())
}

// RankedResult wraps RankedCandidates in the canonical shape.
func RankedResult() *types.CanonicalResult {
	return types.NewCanonicalResult(RankedCandidates())
}

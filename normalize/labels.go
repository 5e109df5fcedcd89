// Package normalize turns the free-text values found on monday.com boards into
// canonical labels, numbers and ISO dates. Every function is total: input that
// cannot be interpreted yields an absent result, never an error.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nullTokens are placeholder strings that mean "no value" on the boards.
var nullTokens = map[string]struct{}{
	"":     {},
	"nan":  {},
	"none": {},
	"n/a":  {},
	"-":    {},
	"null": {},
}

var sectors = map[string]string{
	"powerline":      "Powerline",
	"power line":     "Powerline",
	"power lines":    "Powerline",
	"power-line":     "Powerline",
	"mining":         "Mining",
	"agriculture":    "Agriculture",
	"agri":           "Agriculture",
	"oil & gas":      "Oil & Gas",
	"oil and gas":    "Oil & Gas",
	"oil&gas":        "Oil & Gas",
	"construction":   "Construction",
	"infrastructure": "Infrastructure",
	"infra":          "Infrastructure",
	"solar":          "Solar",
	"renewables":     "Renewables",
	"renewable":      "Renewables",
	"telecom":        "Telecom",
	"railway":        "Railway",
	"railways":       "Railway",
	"defense":        "Defense",
	"defence":        "Defense",
	"urban":          "Urban",
	"real estate":    "Real Estate",
	"tender":         "Tender",
	"aviation":       "Aviation",
	"dsp":            "DSP",
}

var dealStatuses = map[string]string{
	"open":          "Open",
	"active":        "Open",
	"closed won":    "Closed Won",
	"won":           "Closed Won",
	"closed - won":  "Closed Won",
	"closed loss":   "Closed Lost",
	"closed lost":   "Closed Lost",
	"lost":          "Closed Lost",
	"closed - lost": "Closed Lost",
	"on hold":       "On Hold",
	"hold":          "On Hold",
}

var executionStatuses = map[string]string{
	"completed":                    "Completed",
	"complete":                     "Completed",
	"done":                         "Completed",
	"in progress":                  "In Progress",
	"ongoing":                      "In Progress",
	"not started":                  "Not Started",
	"pending":                      "Not Started",
	"executed until current month": "Ongoing (Monthly)",
	"on hold":                      "On Hold",
	"cancelled":                    "Cancelled",
	"canceled":                     "Cancelled",
}

// Canonical deal status labels used by the summaries.
const (
	StatusOpen       = "Open"
	StatusClosedWon  = "Closed Won"
	StatusClosedLost = "Closed Lost"
)

// IsNull reports whether raw is one of the placeholder null tokens.
func IsNull(raw string) bool {
	_, ok := nullTokens[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// Sector maps a sector label onto the controlled vocabulary. Unknown labels
// are returned title-cased; null input returns "".
func Sector(raw string) string {
	if IsNull(raw) {
		return ""
	}
	trimmed := strings.TrimSpace(raw)
	if label, ok := sectors[strings.ToLower(trimmed)]; ok {
		return label
	}
	// A Caser is stateful, so one is built per call.
	return cases.Title(language.Und).String(trimmed)
}

// DealStatus maps a deal status onto Open / Closed Won / Closed Lost / On Hold,
// falling back to the trimmed input.
func DealStatus(raw string) string {
	return lookup(dealStatuses, raw)
}

// ExecutionStatus maps a work order execution status onto its canonical label,
// falling back to the trimmed input.
func ExecutionStatus(raw string) string {
	return lookup(executionStatuses, raw)
}

func lookup(table map[string]string, raw string) string {
	if IsNull(raw) {
		return ""
	}
	trimmed := strings.TrimSpace(raw)
	if label, ok := table[strings.ToLower(trimmed)]; ok {
		return label
	}
	return trimmed
}

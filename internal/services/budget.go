package services

import "strings"

// Canonical budget tiers. The stored budget value is always one of these.
const (
	BudgetUnder500   = "Under $500"
	Budget500To1000  = "$500 - $1,000"
	Budget1000To2500 = "$1,000 - $2,500"
	Budget2500To5000 = "$2,500 - $5,000"
	Budget5000To10k  = "$5,000 - $10,000"
	BudgetAbove10k   = "Above $10,000"

	DefaultBudget = Budget1000To2500
)

var canonicalBudgets = map[string]struct{}{
	BudgetUnder500:   {},
	Budget500To1000:  {},
	Budget1000To2500: {},
	Budget2500To5000: {},
	Budget5000To10k:  {},
	BudgetAbove10k:   {},
}

// Legacy tier names still sent by older clients.
var legacyBudgetAliases = map[string]string{
	"low":  BudgetUnder500,
	"mid":  Budget1000To2500,
	"high": Budget5000To10k,
}

// NormalizeBudget maps any input string onto a canonical budget tier. It is
// total and idempotent: trip creation must never be blocked by value drift
// from a stale client, so unrecognized input falls back to the default tier.
func NormalizeBudget(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultBudget
	}
	if _, ok := canonicalBudgets[trimmed]; ok {
		return trimmed
	}
	if canonical, ok := legacyBudgetAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return DefaultBudget
}

// IsCanonicalBudget reports whether the value is one of the fixed tiers.
func IsCanonicalBudget(value string) bool {
	_, ok := canonicalBudgets[value]
	return ok
}

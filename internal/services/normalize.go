package services

import (
	"strings"
)

// NormalizeName produces the canonical form both matching components compare
// against: lower-cased, trademark glyphs stripped, separator punctuation
// collapsed to spaces, whitespace collapsed and trimmed. Idempotent, so
// normalized text can be re-normalized safely.
func NormalizeName(text string) string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch r {
		case '®', '©', '™':
			// dropped
		case '/', '-', '_':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// IssuerAliasTable maps known issuer name variants onto shared groups. It is
// an immutable value built once at startup and passed into the resolver, so
// tests can swap in their own table.
type IssuerAliasTable struct {
	groups [][]string
}

// NewIssuerAliasTable builds a table from variant groups. Variants are
// normalized on the way in.
func NewIssuerAliasTable(groups [][]string) IssuerAliasTable {
	normalized := make([][]string, 0, len(groups))
	for _, group := range groups {
		variants := make([]string, 0, len(group))
		for _, v := range group {
			if n := NormalizeName(v); n != "" {
				variants = append(variants, n)
			}
		}
		if len(variants) > 0 {
			normalized = append(normalized, variants)
		}
	}
	return IssuerAliasTable{groups: normalized}
}

// DefaultIssuerAliases returns the built-in table of issuer name variants.
// Adding an issuer means adding a variant list here.
func DefaultIssuerAliases() IssuerAliasTable {
	return NewIssuerAliasTable([][]string{
		{"chase", "jpmorgan chase", "jp morgan chase", "jpmcb"},
		{"citi", "citibank", "citigroup"},
		{"amex", "american express"},
		{"capital one", "capitalone", "cap one"},
		{"bank of america", "bofa", "bankamerica"},
		{"wells fargo", "wellsfargo", "wf"},
		{"us bank", "u s bank", "usbank"},
		{"discover", "discover financial", "discover bank"},
		{"barclays", "barclaycard", "barclays bank"},
		{"synchrony", "synchrony bank", "syncb"},
	})
}

// Matches reports whether two normalized issuer names refer to the same
// issuer: equal, one contains the other, or both fall in the same alias group.
func (t IssuerAliasTable) Matches(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	groupA := t.groupOf(a)
	return groupA >= 0 && groupA == t.groupOf(b)
}

func (t IssuerAliasTable) groupOf(name string) int {
	for i, group := range t.groups {
		for _, variant := range group {
			if name == variant || strings.Contains(name, variant) {
				return i
			}
		}
	}
	return -1
}

// WordOverlapScore scores how much of a's vocabulary appears in b. Both
// inputs are assumed normalized. Tokens of length two or less are noise and
// dropped; a token of a counts when some token of b equals it, contains it,
// or is contained by it. Returns the matched and total token counts alongside
// the scaled score so callers can report the fraction.
func WordOverlapScore(a, b string, maxPoints float64) (score float64, matched, total int) {
	tokensA := significantTokens(a)
	tokensB := significantTokens(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0, 0, len(tokensA)
	}

	for _, ta := range tokensA {
		for _, tb := range tokensB {
			if ta == tb || strings.Contains(ta, tb) || strings.Contains(tb, ta) {
				matched++
				break
			}
		}
	}

	score = float64(matched) / float64(len(tokensA)) * maxPoints
	if score > maxPoints {
		score = maxPoints
	}
	return score, matched, len(tokensA)
}

func significantTokens(s string) []string {
	var tokens []string
	for _, t := range strings.Fields(s) {
		if len(t) > 2 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

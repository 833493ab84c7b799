package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trademark glyphs stripped", "Chase Sapphire Reserve®", "chase sapphire reserve"},
		{"separators collapse to spaces", "venture/x-card_name", "venture x card name"},
		{"whitespace collapsed", "  Gold   Card  ", "gold card"},
		{"empty input", "", ""},
		{"only glyphs", "®™©", ""},
		{"mixed", "AAdvantage®  Platinum/Select", "aadvantage platinum select"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	inputs := []string{
		"Chase Sapphire Reserve®",
		"  CITI / PRESTIGE ",
		"plain text",
		"",
		"®©™",
	}
	for _, input := range inputs {
		once := NormalizeName(input)
		assert.Equal(t, once, NormalizeName(once), "input %q", input)
	}
}

func TestIssuerAliasTable_Matches(t *testing.T) {
	aliases := DefaultIssuerAliases()

	tests := []struct {
		name    string
		a, b    string
		matches bool
	}{
		{"equal", "chase", "chase", true},
		{"substring", "chase bank", "chase", true},
		{"alias group citi", "citibank", "citigroup", true},
		{"alias group amex", "amex", "american express", true},
		{"different issuers", "chase", "citi", false},
		{"empty left", "", "chase", false},
		{"empty right", "chase", "", false},
		{"unknown names", "acme bank", "zenith credit", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, aliases.Matches(tt.a, tt.b))
		})
	}
}

func TestIssuerAliasTable_CustomTable(t *testing.T) {
	aliases := NewIssuerAliasTable([][]string{
		{"first bank", "firstbank", "1st bank"},
	})

	assert.True(t, aliases.Matches("firstbank", "1st bank"))
	assert.False(t, aliases.Matches("firstbank", "american express"))
}

func TestWordOverlapScore(t *testing.T) {
	tests := []struct {
		name        string
		a, b        string
		expected    float64
		expMatched  int
		expTotal    int
	}{
		{"full overlap", "sapphire reserve", "chase sapphire reserve", 30, 2, 2},
		{"half overlap", "sapphire preferred", "chase sapphire reserve", 15, 1, 2},
		{"no overlap", "venture card", "platinum select", 0, 0, 2},
		{"short tokens dropped", "a of xx", "a of xx", 0, 0, 0},
		{"empty a", "", "chase sapphire", 0, 0, 0},
		{"containment counts", "sapph reserve", "sapphire reserve", 30, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, matched, total := WordOverlapScore(tt.a, tt.b, 30)
			assert.InDelta(t, tt.expected, score, 0.001)
			assert.Equal(t, tt.expMatched, matched)
			assert.Equal(t, tt.expTotal, total)
		})
	}
}

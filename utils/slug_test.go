package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Parentheses and spaces", input: "Senior SWE (Remote)", expected: "senior-swe-remote"},
		{name: "Hyphen runs collapse", input: "Backend -- Go  Engineer", expected: "backend-go-engineer"},
		{name: "Leading and trailing separators", input: "  - Data Scientist -  ", expected: "data-scientist"},
		{name: "Punctuation is dropped not split", input: "C++/C# Dev.", expected: "cc-dev"},
		{name: "Underscore kept", input: "ml_ops lead", expected: "ml_ops-lead"},
		{name: "Diacritics folded", input: "Ingénieur Zürich", expected: "ingenieur-zurich"},
		{name: "Tabs and newlines", input: "Quant\tTrader\nLondon", expected: "quant-trader-london"},
		{name: "Only punctuation", input: "!!!", expected: ""},
		{name: "Empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{
		"Senior SWE (Remote)",
		"  Staff Engineer, Platform — EMEA ",
		"Ingénieur Zürich",
		"a_-_b",
		"---",
		"Head of Growth & Marketing (m/w/d)",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
	}
}

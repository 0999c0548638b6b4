package convention

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The registration order decides which convention gets credited when several
// produce the same confidence, so it is part of the contract.
func TestDefaultSetOrder(t *testing.T) {
	var names []string
	for _, c := range DefaultSet() {
		names = append(names, c.Name())
	}

	assert.Equal(t, []string{
		"camelCase",
		"PascalCase",
		"snake_case",
		"kebab-case",
		"prefix",
		"abbreviation",
		"hungarian",
	}, names)
}

func TestTokenScore(t *testing.T) {
	assert.Equal(t, 1.0, tokenScore([]string{"email"}, []string{"email"}))
	assert.Equal(t, 0.0, tokenScore(nil, []string{"email"}))
	assert.Equal(t, 0.0, tokenScore([]string{"email"}, nil))

	// strict prefix earns the bonus, scaled by the shared share
	assert.InDelta(t, 0.9, tokenScore([]string{"email", "address"}, []string{"email"}), 1e-9)
	assert.InDelta(t, 0.8+0.2/3, tokenScore([]string{"date", "of", "birth"}, []string{"date"}), 1e-9)

	// a shared trailing token is a different property, scored by edit distance
	assert.Less(t, tokenScore([]string{"contact", "email"}, []string{"email"}), 0.5)
}

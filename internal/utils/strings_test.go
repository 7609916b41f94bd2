package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"jane":   "Jane",
		"DOE":    "Doe",
		"mcCann": "Mccann",
		"o":      "O",
		"":       "",
		"éire":   "Éire",
	}
	for in, want := range cases {
		assert.Equal(t, want, Capitalize(in), "Capitalize(%q)", in)
	}
}

func TestNewUUID(t *testing.T) {
	a, b := NewUUID(), NewUUID()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

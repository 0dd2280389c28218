package utils

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSixIDStringRoundTrip(t *testing.T) {
	id := NewSixID()
	s := id.String()
	assert.Len(t, s, 10)

	parsed, err := ParseSixID(s)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseSixIDLeniency(t *testing.T) {
	id := NewSixID()
	s := id.String()

	// Lowercase letters and hyphens are accepted.
	lenient := strings.ToLower(s[:5] + "-" + s[5:])
	parsed, err := ParseSixID(lenient)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseSixID("too-short")
	assert.Error(t, err)

	_, err = ParseSixID("UUUUUUUUUU") // U is not in the Crockford alphabet
	assert.Error(t, err)

	// The empty string parses to the zero id.
	zero, err := ParseSixID("")
	require.NoError(t, err)
	assert.Equal(t, SixID{}, zero)
}

func TestSixIDJSON(t *testing.T) {
	id := NewSixID()

	data, err := json.Marshal(id)
	require.NoError(t, err)

	var decoded SixID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)
}

func TestNewSixIDHook(t *testing.T) {
	fixed := SixID{1, 2, 3, 4, 5, 6}
	NewSixIDHook = func() (SixID, bool) { return fixed, true }
	defer func() { NewSixIDHook = nil }()

	assert.Equal(t, fixed, NewSixID())
}

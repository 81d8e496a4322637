package testkit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertJSONBody compares two JSON documents after decoding both, so key
// order and whitespace never matter.
func AssertJSONBody(t *testing.T, expected string, actual []byte) {
	t.Helper()

	var expVal, actVal any
	require.NoError(t, json.Unmarshal([]byte(expected), &expVal), "expected body is not valid JSON")

	if !assert.NoError(t, json.Unmarshal(actual, &actVal), "actual body is not valid JSON\nbody: %s", string(actual)) {
		return
	}
	assert.Equal(t, expVal, actVal, "response body mismatch")
}

// AssertMocksAllCalled fails the test for every route of mt that was never hit.
func AssertMocksAllCalled(t *testing.T, mt *MockTransport) {
	t.Helper()
	for _, err := range mt.AssertAllCalled() {
		assert.NoError(t, err)
	}
}

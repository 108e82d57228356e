// Package testutil provides assertions over the invocation wire format.
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelfusion/llamacpp-bindings/domain/entities"
)

// DecodeResult unmarshals a response payload into a Result.
func DecodeResult(t testing.TB, resp []byte) entities.Result {
	t.Helper()
	var res entities.Result
	require.NoError(t, json.Unmarshal(resp, &res), "response is not a result envelope: %s", resp)
	return res
}

// RequireRaised asserts that res carries an error of the given kind and code
// and returns the error for further checks.
func RequireRaised(t testing.TB, res entities.Result, kind string, code int) *entities.ErrorDetail {
	t.Helper()
	require.True(t, res.Failed(), "expected %s, got value %s", kind, res.Value)
	assert.Equal(t, kind, res.Error.Kind)
	assert.Equal(t, code, res.Error.Code)
	return res.Error
}

// RequireErrorDetail asserts that err is an *entities.ErrorDetail of kind.
func RequireErrorDetail(t testing.TB, err error, kind string) *entities.ErrorDetail {
	t.Helper()
	var detail *entities.ErrorDetail
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, kind, detail.Kind)
	return detail
}

// AssertJSONEqual compares two JSON documents, ignoring formatting.
func AssertJSONEqual(t testing.TB, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedJSON, actualJSON interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}

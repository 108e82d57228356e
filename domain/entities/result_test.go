package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Encoding(t *testing.T) {
	ok, err := ResultOf("Alice")
	require.NoError(t, err)
	data, err := json.Marshal(ok)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"Alice"}`, string(data))

	detail := NewErrorDetail("INVALID_ARGUMENT_COUNT", "Wrong number of arguments", 400)

	data, err = json.Marshal(ResultError(detail))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"error":"INVALID_ARGUMENT_COUNT","message":"Wrong number of arguments","code":400}}`, string(data))

	data, err = json.Marshal(ResultErrorWithNull(detail))
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":null,"error":{"error":"INVALID_ARGUMENT_COUNT","message":"Wrong number of arguments","code":400}}`, string(data))
}

func TestResult_Decode(t *testing.T) {
	var res Result
	require.NoError(t, json.Unmarshal([]byte(`{"value":"Alice"}`), &res))
	assert.False(t, res.Failed())

	var s string
	require.NoError(t, res.Decode(&s))
	assert.Equal(t, "Alice", s)

	require.NoError(t, json.Unmarshal([]byte(`{"value":null,"error":{"error":"X","message":"m","code":400}}`), &res))
	assert.True(t, res.Failed())
	err := res.Decode(&s)
	require.Error(t, err)
	assert.Equal(t, "X: m", err.Error())

	assert.Error(t, Result{}.Decode(&s))
}

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullMarshal(t *testing.T) {
	b, err := json.Marshal(From("hello"))
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, string(b))

	b, err = json.Marshal(NullOf[string]())
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = json.Marshal(From(int64(42)))
	require.NoError(t, err)
	assert.Equal(t, "42", string(b))
}

func TestNullUnmarshal(t *testing.T) {
	var s Null[string]
	require.NoError(t, json.Unmarshal([]byte(`"x"`), &s))
	assert.True(t, s.Valid)
	assert.Equal(t, "x", s.Value)

	require.NoError(t, json.Unmarshal([]byte("null"), &s))
	assert.True(t, s.IsNil())
	assert.Equal(t, "", s.Value)

	var n Null[int]
	require.Error(t, json.Unmarshal([]byte(`"nope"`), &n))
}

func TestNullOmittedFieldStaysInvalid(t *testing.T) {
	var payload struct {
		Vehicle Null[int64] `json:"vehicle"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))
	assert.True(t, payload.Vehicle.IsNil())
}

func TestNullSetAndClear(t *testing.T) {
	var n Null[int]
	assert.True(t, n.IsNil())

	n.Set(7)
	v, ok := n.Get()
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	n.Clear()
	assert.True(t, n.IsNil())
	assert.Equal(t, 0, n.Value)
}

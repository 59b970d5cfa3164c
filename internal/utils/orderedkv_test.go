package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsKeepOrder(t *testing.T) {
	var f Fields[string]
	f.Set("type", "Lost")
	f.Set("description", "brown dog")
	f.Set("location", "")
	f.Set("type", "Found")

	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"Found","description":"brown dog","location":""}`, string(b))

	v, ok := f.Get("description")
	assert.True(t, ok)
	assert.Equal(t, "brown dog", v)
	_, ok = f.Get("missing")
	assert.False(t, ok)
}

func TestFieldsEmpty(t *testing.T) {
	b, err := json.Marshal(Fields[int]{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}

package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONB(t *testing.T) {
	v, err := JSONB(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), v)

	v, err = JSONB{"run_id": "run_1"}.Value()
	require.NoError(t, err)

	var got JSONB
	require.NoError(t, got.Scan(v))
	assert.Equal(t, JSONB{"run_id": "run_1"}, got)

	require.NoError(t, got.Scan(nil))
	assert.Nil(t, got)

	assert.Error(t, got.Scan(42))
}

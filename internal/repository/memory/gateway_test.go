package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_LoadMissing(t *testing.T) {
	g := NewGateway()
	data, err := g.Load(context.Background(), "library.folders")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestGateway_SaveCopiesData(t *testing.T) {
	ctx := context.Background()
	g := NewGateway()

	payload := []byte(`{"a":1}`)
	require.NoError(t, g.Save(ctx, "k", payload))
	payload[0] = 'X'

	got, err := g.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	got[0] = 'Y'
	again, err := g.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(again))
	assert.Equal(t, 1, g.Keys())
}

func TestGateway_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGateway()
	assert.ErrorIs(t, g.Save(ctx, "k", []byte("x")), context.Canceled)
	_, err := g.Load(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGateway_Purge(t *testing.T) {
	ctx := context.Background()
	g := NewGateway()
	require.NoError(t, g.Save(ctx, "a", []byte("1")))
	require.NoError(t, g.Save(ctx, "b", []byte("2")))

	require.NoError(t, g.Purge(ctx))
	assert.Equal(t, 0, g.Keys())
}

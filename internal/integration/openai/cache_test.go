package openai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	calls int
	err   error
}

func (e *countingEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(len(texts[i]))}
	}
	return out, nil
}

func (e *countingEmbedder) Dimensions() int { return 1 }

func TestCachedEmbedderCachesQueries(t *testing.T) {
	next := &countingEmbedder{}
	e := NewCachedEmbedder(next, time.Minute)

	first, err := e.Embed(context.Background(), []string{"capital"})
	require.NoError(t, err)
	second, err := e.Embed(context.Background(), []string{"capital"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1, e.Dimensions())
}

func TestCachedEmbedderBypassesBatches(t *testing.T) {
	next := &countingEmbedder{}
	e := NewCachedEmbedder(next, time.Minute)

	_, err := e.Embed(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	_, err = e.Embed(context.Background(), []string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
}

func TestCachedEmbedderDoesNotCacheErrors(t *testing.T) {
	next := &countingEmbedder{err: errors.New("down")}
	e := NewCachedEmbedder(next, time.Minute)

	_, err := e.Embed(context.Background(), []string{"q"})
	require.Error(t, err)

	next.err = nil
	_, err = e.Embed(context.Background(), []string{"q"})
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

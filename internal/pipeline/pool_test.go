package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/fieldroute/internal/pipeline"
)

func TestRun_PreservesOrderAcrossWorkers(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	pool := pipeline.New(2)

	results, err := pipeline.Run(context.Background(), pool, items, func(_ context.Context, i int) (int, error) {
		return i * i, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 9, 16, 25, 36, 49, 64}, results)
}

func TestRun_PropagatesFirstError(t *testing.T) {
	items := []int{1, 2, 3}
	pool := pipeline.New(1)
	boom := errors.New("boom")

	_, err := pipeline.Run(context.Background(), pool, items, func(_ context.Context, i int) (int, error) {
		if i == 2 {
			return 0, boom
		}
		return i, nil
	})

	require.ErrorIs(t, err, boom)
}

func TestRun_EmptyInput(t *testing.T) {
	pool := pipeline.New(0)
	results, err := pipeline.Run(context.Background(), pool, []int{}, func(_ context.Context, i int) (int, error) {
		t.Fatal("work should not run for empty input")
		return 0, nil
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

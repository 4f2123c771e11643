package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nenkin/internal/pipeline"
)

func recordingSteps(ids []string, failAt string, calls *[]string) []pipeline.Step {
	steps := make([]pipeline.Step, len(ids))
	for i, id := range ids {
		steps[i] = pipeline.Step{
			ID: id,
			Run: func(ctx context.Context) error {
				*calls = append(*calls, id)
				if id == failAt {
					return errors.New("boom")
				}
				return nil
			},
		}
	}
	return steps
}

func TestRun_AllSucceed(t *testing.T) {
	var calls []string
	res := pipeline.Run(context.Background(), recordingSteps([]string{"a", "b", "c"}, "", &calls), nil)

	assert.True(t, res.OK())
	assert.Equal(t, []string{"a", "b", "c"}, calls)
	assert.Equal(t, []string{"a", "b", "c"}, res.Succeeded)
	assert.Empty(t, res.FailedID)
	assert.Empty(t, res.Remaining)
	assert.NotEmpty(t, res.RunID)
}

func TestRun_AbortsAtFirstFailure(t *testing.T) {
	for m := 1; m <= 4; m++ {
		ids := []string{"s1", "s2", "s3", "s4"}
		failAt := ids[m-1]

		var calls []string
		res := pipeline.Run(context.Background(), recordingSteps(ids, failAt, &calls), nil)

		require.False(t, res.OK())
		assert.Equal(t, ids[:m], calls, "steps 1..M issued in order, nothing after M")
		assert.Equal(t, ids[:m-1], nilIfEmpty(res.Succeeded))
		assert.Equal(t, failAt, res.FailedID)
		assert.Equal(t, ids[m:], nilIfEmpty(res.Remaining))
		assert.EqualError(t, res.Err, "boom")
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls []string
	steps := recordingSteps([]string{"a", "b", "c"}, "", &calls)
	steps[0].Run = func(context.Context) error {
		calls = append(calls, "a")
		cancel()
		return nil
	}

	res := pipeline.Run(ctx, steps, nil)

	assert.Equal(t, []string{"a"}, calls)
	assert.Equal(t, []string{"a"}, res.Succeeded)
	assert.Empty(t, res.FailedID, "b was never issued")
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Equal(t, []string{"b", "c"}, res.Remaining)
	assert.False(t, res.OK())
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls []string

	res := pipeline.Run(ctx, recordingSteps([]string{"a", "b"}, "", &calls), nil)

	assert.Empty(t, calls)
	assert.Empty(t, res.Succeeded)
	assert.Empty(t, res.FailedID)
	assert.Equal(t, []string{"a", "b"}, res.Remaining)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestRun_Empty(t *testing.T) {
	res := pipeline.Run(context.Background(), nil, nil)
	assert.True(t, res.OK())
	assert.Empty(t, res.Succeeded)
}

// nilIfEmpty normalizes empty slices so ids[:0] compares equal to a nil result.
func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return []string{}
	}
	return s
}

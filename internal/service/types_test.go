package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nenkin/internal/service"
)

func TestSaveResult_String(t *testing.T) {
	tests := map[string]struct {
		res  service.SaveResult
		want string
	}{
		"partial": {
			res:  service.SaveResult{Succeeded: []string{"a", "b"}, FailedID: "c", Remaining: []string{"d"}},
			want: "saved: a, b; failed: c; not attempted: d",
		},
		"first fails": {
			res:  service.SaveResult{FailedID: "a", Remaining: []string{"b"}},
			want: "saved: (none); failed: a; not attempted: b",
		},
		"whole write failed": {
			res:  service.SaveResult{Remaining: []string{"a", "b"}},
			want: "saved: (none); not attempted: a, b",
		},
		"complete": {
			res:  service.SaveResult{Succeeded: []string{"a"}},
			want: "saved: a; not attempted: (none)",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.String())
		})
	}
}

func TestSaveResult_Complete(t *testing.T) {
	assert.True(t, service.SaveResult{}.Complete())
	assert.True(t, service.SaveResult{Succeeded: []string{"a"}}.Complete())
	assert.False(t, service.SaveResult{FailedID: "a"}.Complete())
	assert.False(t, service.SaveResult{Remaining: []string{"a"}}.Complete())
}

func TestSaveError(t *testing.T) {
	cause := errors.New("quota exceeded")
	var err error = &service.SaveError{
		Result: service.SaveResult{Succeeded: []string{"a"}, FailedID: "b"},
		Err:    cause,
	}

	assert.ErrorIs(t, err, service.ErrSaveFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, service.ErrLoadFailed)
	assert.Equal(t, "save failed at b: quota exceeded", err.Error())

	var se *service.SaveError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "b", se.Result.FailedID)

	whole := &service.SaveError{Err: cause}
	assert.Equal(t, "save failed: quota exceeded", whole.Error())
}

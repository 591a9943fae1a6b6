package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"txdash/internal/core"
)

func TestWithTimeout(t *testing.T) {
	slow := Func(func(ctx context.Context) ([]core.Transaction, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	_, err := WithTimeout(slow, 10*time.Millisecond).Fetch(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWithTimeoutPassesThrough(t *testing.T) {
	want := []core.Transaction{{ID: 1}}
	fast := Func(func(ctx context.Context) ([]core.Transaction, error) {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return want, nil
	})

	got, err := WithTimeout(fast, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	var same Source = fast
	assert.NotNil(t, WithTimeout(same, 0))
}

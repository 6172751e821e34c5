package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CenterBooking/pkg/keylock"
	"github.com/m04kA/SMC-CenterBooking/pkg/logger"
)

func TestTimeoutLocker_BoundsWorkAndLogsAtDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := logger.New(path, "debug")
	require.NoError(t, err)

	l := timeoutLocker{inner: keylock.New(), timeout: 50 * time.Millisecond, log: log}

	err = l.DoLocked(context.Background(), "Chennai|2025-10-15", func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	})
	require.NoError(t, err)

	err = l.DoLocked(context.Background(), "Chennai|2025-10-15", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, log.Close())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "lock key=Chennai|2025-10-15 released")
}

package lock

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTryAcquire_ExclusiveUntilReleased(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "lock")

	first, err := TryAcquire(dir, "report-cron")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "report-cron.lock"), first.Path())

	_, err = TryAcquire(dir, "report-cron")
	require.ErrorIs(t, err, ErrHeld)

	other, err := TryAcquire(dir, "cleanup-cron")
	require.NoError(t, err, "locks are per command")
	require.NoError(t, other.Release())

	require.NoError(t, first.Release())
	require.NoError(t, first.Release())

	again, err := TryAcquire(dir, "report-cron")
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestTryAcquire_WritesPID(t *testing.T) {
	dir := t.TempDir()

	l, err := TryAcquire(dir, "job")
	require.NoError(t, err)
	defer func() { _ = l.Release() }()

	content, err := os.ReadFile(Path(dir, "job"))
	require.NoError(t, err)
	require.Equal(t, strconv.Itoa(os.Getpid()), string(content))
}

func TestTryAcquire_EmptyName(t *testing.T) {
	_, err := TryAcquire(t.TempDir(), "")
	require.Error(t, err)
}

func TestRelease_Nil(t *testing.T) {
	var l *Lock
	require.NoError(t, l.Release())
}

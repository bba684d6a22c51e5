package usage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnhandledCommand(t *testing.T) {
	err := UnhandledCommand("deploy")

	require.Equal(t, `Unhandled command "deploy" invoked`, err.Error())
	require.NotEmpty(t, err.Detail)
	require.Equal(t, 1, err.ExitCode())
}

func TestLockHeld_ExitsZero(t *testing.T) {
	require.Equal(t, 0, LockHeld("report-cron").ExitCode())
}

func TestInvalidArgument_ExitsTwo(t *testing.T) {
	err := InvalidArgument("limit", "abc")

	require.Contains(t, err.Error(), `"abc"`)
	require.Equal(t, 2, err.ExitCode())
}

func TestExitCode_UnknownKind(t *testing.T) {
	err := &Error{Kind: ErrorKind(42)}
	require.Equal(t, 1, err.ExitCode())
}

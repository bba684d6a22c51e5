package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/routeshell/internal/domain"
	"github.com/footprint-tools/routeshell/internal/store"
	"github.com/footprint-tools/routeshell/internal/testutil"
)

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestNew_CreatesFileWithPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")

	s, err := store.New(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.Equal(t, path, s.Path())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, s.Record(domain.Invocation{Command: "deploy", Args: []string{"deploy"}}))
	list, err := s.List(domain.InvocationFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestRecord_AssignsIDAndTime(t *testing.T) {
	s := testutil.NewTestStore(t)

	require.NoError(t, s.Record(domain.Invocation{Command: "status"}))

	list, err := s.List(domain.InvocationFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].ID, 36)
	require.False(t, list[0].StartedAt.IsZero())
	require.Empty(t, list[0].Args)
}

func TestRecord_RoundTripsFields(t *testing.T) {
	s := testutil.NewTestStore(t)

	in := domain.Invocation{
		ID:         "fixed-id",
		Command:    "deploy",
		Route:      "deploy",
		Args:       []string{"deploy", "prod", "--force"},
		ExitStatus: 3,
		StartedAt:  base,
		Duration:   1500 * time.Millisecond,
	}
	require.NoError(t, s.Record(in))

	got, err := s.Get("fixed-id")
	require.NoError(t, err)
	require.Equal(t, in.Command, got.Command)
	require.Equal(t, in.Route, got.Route)
	require.Equal(t, in.Args, got.Args)
	require.Equal(t, 3, got.ExitStatus)
	require.True(t, base.Equal(got.StartedAt))
	require.Equal(t, in.Duration, got.Duration)

	_, err = s.Get("missing")
	require.Error(t, err)
}

func TestList_NewestFirstWithFilters(t *testing.T) {
	s := testutil.NewTestStore(t)
	testutil.SeedInvocations(t, s, base,
		domain.Invocation{Command: "deploy", ExitStatus: 0},
		domain.Invocation{Command: "status", ExitStatus: 0},
		domain.Invocation{Command: "deploy", ExitStatus: 1},
		domain.Invocation{Command: "deploy", ExitStatus: 2},
	)

	all, err := s.List(domain.InvocationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, 2, all[0].ExitStatus)

	deploys, err := s.List(domain.InvocationFilter{Command: "deploy", Limit: 2})
	require.NoError(t, err)
	require.Len(t, deploys, 2)
	require.Equal(t, 2, deploys[0].ExitStatus)
	require.Equal(t, 1, deploys[1].ExitStatus)

	since := base.Add(2 * time.Minute)
	recent, err := s.List(domain.InvocationFilter{Since: &since})
	require.NoError(t, err)
	require.Len(t, recent, 2)
}

func TestLast(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, ok, err := s.Last("deploy")
	require.NoError(t, err)
	require.False(t, ok)

	testutil.SeedInvocations(t, s, base,
		domain.Invocation{Command: "deploy", ExitStatus: 0},
		domain.Invocation{Command: "deploy", ExitStatus: 4},
	)

	last, ok, err := s.Last("deploy")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 4, last.ExitStatus)
}

func TestPrune(t *testing.T) {
	s := testutil.NewTestStore(t)
	testutil.SeedInvocations(t, s, base,
		domain.Invocation{Command: "a"},
		domain.Invocation{Command: "b"},
		domain.Invocation{Command: "c"},
	)

	removed, err := s.Prune(base.Add(90 * time.Second))
	require.NoError(t, err)
	require.EqualValues(t, 2, removed)

	left, err := s.List(domain.InvocationFilter{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	require.Equal(t, "c", left[0].Command)
}

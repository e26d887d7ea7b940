package evalcache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestBadger(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := OpenBadger(InMemoryBadgerConfig())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBadgerStorePutGet(t *testing.T) {
	s := openTestBadger(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testEntry("42", "bebo café todas las mañanas", 90)))

	got, err := s.Get(ctx, "42", "bebo café todas las mañanas")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, 90, got.Result.BaseScore)
	require.EqualValues(t, 1, got.Hits)
	require.False(t, got.CreatedAt.IsZero())

	got, err = s.Get(ctx, "42", "bebo café todas las mañanas")
	require.NoError(t, err)
	require.EqualValues(t, 2, got.Hits)
}

func TestBadgerStoreMissAndDelete(t *testing.T) {
	s := openTestBadger(t)
	ctx := context.Background()

	got, err := s.Get(ctx, "42", "missing")
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, s.Put(ctx, testEntry("42", "hola", 70)))
	require.NoError(t, s.Delete(ctx, "42", "hola"))

	got, err = s.Get(ctx, "42", "hola")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestBadgerStoreSentenceIsolation(t *testing.T) {
	s := openTestBadger(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testEntry("A", "same text", 90)))
	require.NoError(t, s.Put(ctx, testEntry("B", "same text", 40)))
	require.NoError(t, s.Put(ctx, testEntry("A", "other text", 60)))

	forA, err := s.Entries(ctx, "A")
	require.NoError(t, err)
	require.Len(t, forA, 2)
	for _, e := range forA {
		require.Equal(t, "A", e.SentenceID)
	}
}

func TestBadgerStoreKeySeparatorSafety(t *testing.T) {
	s := openTestBadger(t)
	ctx := context.Background()

	// Sentence "1" must never see entries for sentence "12" even though
	// "1" is a prefix of "12".
	require.NoError(t, s.Put(ctx, testEntry("12", "hola", 50)))
	forOne, err := s.Entries(ctx, "1")
	require.NoError(t, err)
	require.Empty(t, forOne)
}

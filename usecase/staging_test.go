package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagingSessionsAreIsolated(t *testing.T) {
	store := NewStagingStore()
	s1 := store.NewSession()
	s2 := store.NewSession()
	require.NotEqual(t, s1, s2)

	store.Add(s1, "a.pdf", "2026-08-30", []byte("a"))
	store.Add(s2, "b.pdf", "2026-08-30", []byte("b"))
	store.Add(s1, "c.pdf", "2026-08-30", []byte("c"))

	one := store.List(s1)
	require.Len(t, one, 2)
	assert.Equal(t, "a.pdf", one[0].Filename)
	assert.Equal(t, "c.pdf", one[1].Filename)

	two := store.List(s2)
	require.Len(t, two, 1)
	assert.Equal(t, "b.pdf", two[0].Filename)
}

func TestStagingIDsAreUniqueAcrossSessions(t *testing.T) {
	store := NewStagingStore()
	a := store.Add(store.NewSession(), "a.pdf", "", nil)
	b := store.Add(store.NewSession(), "b.pdf", "", nil)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestStagingClear(t *testing.T) {
	store := NewStagingStore()
	session := store.NewSession()
	store.Add(session, "a.pdf", "", []byte("a"))

	store.Clear(session)
	assert.Empty(t, store.List(session))

	// Clearing an unknown session is a no-op.
	store.Clear("no-such-session")
}

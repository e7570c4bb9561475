package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutAndGet(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	data := []byte("fake wav bytes")
	ref, err := store.Put(PrefixAudio, data, ".wav")
	require.NoError(t, err)
	assert.Contains(t, ref, PrefixAudio+"/")
	assert.Contains(t, ref, ".wav")

	got, err := store.Get(ref)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestLocalStore_Put_ExtWithoutDot(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ref, err := store.Put(PrefixSample, []byte("x"), "mp3")
	require.NoError(t, err)
	assert.Contains(t, ref, ".mp3")
}

func TestLocalStore_Put_UniqueRefs(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ref1, err := store.Put(PrefixAudio, []byte("a"), ".wav")
	require.NoError(t, err)
	ref2, err := store.Put(PrefixAudio, []byte("b"), ".wav")
	require.NoError(t, err)

	assert.NotEqual(t, ref1, ref2)
}

func TestLocalStore_Get_NotFound(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get("audio/missing.wav")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_Get_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get("../etc/passwd")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get("/etc/passwd")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_URL(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/artifacts/audio/x.wav", store.URL("audio/x.wav"))
}

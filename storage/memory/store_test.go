package memory

import (
	"context"
	"testing"

	"github.com/poiesic/lostvec/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	store := NewStore(16)
	store.Put("items/a.jpg", []byte("image-bytes"))
	store.Put("items/huge.jpg", make([]byte, 32))

	tests := []struct {
		name       string
		key        string
		wantStatus storage.FetchStatus
		wantData   []byte
	}{
		{"present object", "items/a.jpg", storage.FetchOK, []byte("image-bytes")},
		{"missing object", "items/missing.jpg", storage.FetchNotFound, nil},
		{"oversized object", "items/huge.jpg", storage.FetchTooLarge, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := store.Fetch(context.Background(), tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantData, res.Data)
		})
	}
}

func TestFetch_EmptyKey(t *testing.T) {
	store := NewStore(0)
	_, err := store.Fetch(context.Background(), "")
	assert.ErrorIs(t, err, storage.ErrEmptyKey)
}

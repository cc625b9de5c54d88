package clip

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/lostvec/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSidecar(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/embed/text", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"embedding": []float32{0.6, 0.8}})
	})
	mux.HandleFunc("/embed/image", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"embedding": []float32{1, 0}})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestNewEncoder_EmptyHost(t *testing.T) {
	_, err := NewEncoder("  ")
	assert.ErrorIs(t, err, embedding.ErrEncoderUnavailable)
}

func TestEmbedText(t *testing.T) {
	server := newTestSidecar(t)
	encoder, err := NewEncoder(server.URL)
	require.NoError(t, err)

	vec, err := encoder.EmbedText(context.Background(), "lost wallet")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.6, 0.8}, vec)
}

func TestEmbedTexts_PreservesOrder(t *testing.T) {
	server := newTestSidecar(t)
	encoder, err := NewEncoder(server.URL)
	require.NoError(t, err)

	vecs, err := encoder.EmbedTexts(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
}

func TestEmbedImage(t *testing.T) {
	server := newTestSidecar(t)
	encoder, err := NewEncoder(server.URL)
	require.NoError(t, err)

	vec, err := encoder.EmbedImage(context.Background(), []byte{0xff, 0xd8})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vec)
}

func TestEmbedText_SidecarError(t *testing.T) {
	server := newTestSidecar(t)
	encoder, err := NewEncoder(server.URL)
	require.NoError(t, err)

	_, err = encoder.EmbedText(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/lostvec/embedding"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Encoder implements embedding.Encoder using OpenAI-compatible embedding
// APIs. It is text-only: image requests return embedding.ErrImageNotSupported
// and the pipeline degrades those items to text-only processing. Use the clip
// encoder for multimodal deployments.
type Encoder struct {
	embedder embeddings.Embedder
	logger   *slog.Logger
}

// newEncoder is an internal constructor that returns the concrete type.
func newEncoder(host, model string) (*Encoder, error) {
	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication.
	client, err := openai.New(
		openai.WithBaseURL(host),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Encoder{
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-encoder"),
	}, nil
}

// NewEncoder creates a text-only encoder against an OpenAI-compatible API.
//
// Returns the embedding.Encoder interface to enforce abstraction.
func NewEncoder(host, model string) (embedding.Encoder, error) {
	return newEncoder(host, model)
}

// EmbedText generates a vector embedding for a single text string.
func (e *Encoder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	e.logger.Debug("generating embedding for single text", "length", len(text))

	vecs, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}
	if len(vecs) == 0 {
		e.logger.Warn("embedder returned empty result")
		return []float32{}, nil
	}
	return vecs[0], nil
}

// EmbedTexts generates vector embeddings for multiple text strings in a batch.
func (e *Encoder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	vecs, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}
	return vecs, nil
}

// EmbedImage always fails: OpenAI-compatible embedding APIs are text-only.
func (e *Encoder) EmbedImage(ctx context.Context, data []byte) ([]float32, error) {
	return nil, embedding.ErrImageNotSupported
}

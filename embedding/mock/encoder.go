package mock

import (
	"context"
	"hash/fnv"
	"math"
)

// MockEncoder is a test double for embedding.Encoder.
// It allows custom behavior injection via function fields.
type MockEncoder struct {
	// EmbedTextFunc is called by EmbedText if set.
	// If nil, uses default deterministic behavior.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc is called by EmbedTexts if set.
	// If nil, uses default deterministic behavior.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedImageFunc is called by EmbedImage if set.
	// If nil, uses default deterministic behavior.
	EmbedImageFunc func(ctx context.Context, data []byte) ([]float32, error)

	// Dimension of generated vectors. Defaults to 512 when zero.
	Dimension int

	callCount int
}

// NewMockEncoder creates a mock encoder with default deterministic behavior.
// Returns the concrete type to allow test assertions and behavior injection.
func NewMockEncoder() *MockEncoder {
	return &MockEncoder{}
}

// EmbedText generates a deterministic embedding based on the text hash.
func (m *MockEncoder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return DeterministicVector([]byte(text), m.dim()), nil
}

// EmbedTexts generates deterministic embeddings for multiple texts.
func (m *MockEncoder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = DeterministicVector([]byte(text), m.dim())
	}
	return embeddings, nil
}

// EmbedImage generates a deterministic embedding based on the image bytes.
func (m *MockEncoder) EmbedImage(ctx context.Context, data []byte) ([]float32, error) {
	m.callCount++

	if m.EmbedImageFunc != nil {
		return m.EmbedImageFunc(ctx, data)
	}
	return DeterministicVector(data, m.dim()), nil
}

// CallCount returns the number of times any method was called.
func (m *MockEncoder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockEncoder) Reset() {
	m.callCount = 0
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
	m.EmbedImageFunc = nil
}

func (m *MockEncoder) dim() int {
	if m.Dimension > 0 {
		return m.Dimension
	}
	return 512
}

// DeterministicVector creates a unit-norm embedding vector from arbitrary
// content. It uses an FNV hash so the same content always produces the same
// vector.
func DeterministicVector(content []byte, dim int) []float32 {
	h := fnv.New32a()
	h.Write(content)
	seed := h.Sum32()

	vector := make([]float32, dim)
	var sumSquares float64
	for i := 0; i < dim; i++ {
		// Simple pseudo-random generation based on seed and index
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%1000)/1000.0 + 0.001
		sumSquares += float64(vector[i]) * float64(vector[i])
	}

	norm := float32(math.Sqrt(sumSquares))
	for i := range vector {
		vector[i] /= norm
	}
	return vector
}

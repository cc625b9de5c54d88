package embedding

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"

	// Image formats accepted for decode validation.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// DefaultDimension matches the projection dimension of CLIP ViT-B/32.
const DefaultDimension = 512

// DefaultTextWeight favors text over image during fusion; free-form text
// descriptions are the more reliable signal for lost-item reports.
const DefaultTextWeight = 0.6

// Engine wraps an Encoder and guarantees that every vector it hands out is
// unit-normalized and of the configured dimension.
// The Engine is read-only after construction and safe for sequential reuse.
type Engine struct {
	encoder Encoder
	dim     int
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// NewEngine creates an engine over the given encoder producing vectors of the
// given dimension. A nil encoder or non-positive dimension is rejected.
func NewEngine(encoder Encoder, dim int, opts ...Option) (*Engine, error) {
	if encoder == nil {
		return nil, ErrEncoderUnavailable
	}
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", ErrDimensionMismatch, dim)
	}

	e := &Engine{
		encoder: encoder,
		dim:     dim,
		logger:  slog.Default().With("component", "embedding-engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Dimension returns the configured embedding dimension.
func (e *Engine) Dimension() int {
	return e.dim
}

// EncodeText embeds a single text and L2-normalizes the result.
func (e *Engine) EncodeText(ctx context.Context, text string) ([]float32, error) {
	vec, err := e.encoder.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}
	return e.normalized(vec)
}

// EncodeTexts embeds a batch of texts, L2-normalizing each result.
func (e *Engine) EncodeTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vecs, err := e.encoder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("embedding result mismatch: expected %d, received %d", len(texts), len(vecs))
	}

	out := make([][]float32, len(vecs))
	for i, vec := range vecs {
		normalized, err := e.normalized(vec)
		if err != nil {
			return nil, err
		}
		out[i] = normalized
	}
	return out, nil
}

// EncodeImage validates that data decodes as an image, embeds it, and
// L2-normalizes the result. Undecodable bytes yield ErrInvalidImage.
func (e *Engine) EncodeImage(ctx context.Context, data []byte) ([]float32, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	e.logger.Debug("decoded image", "format", format, "bytes", len(data))

	vec, err := e.encoder.EmbedImage(ctx, data)
	if err != nil {
		return nil, err
	}
	return e.normalized(vec)
}

// Combine fuses a text vector and an image vector by weighted element-wise
// averaging followed by re-normalization. Both inputs must already be
// unit-normalized vectors of the engine's dimension; textWeight must lie in
// [0, 1] and the image receives the remaining 1-textWeight.
func (e *Engine) Combine(textVec, imageVec []float32, textWeight float64) ([]float32, error) {
	if textWeight < 0 || textWeight > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWeight, textWeight)
	}
	if len(textVec) != e.dim || len(imageVec) != e.dim {
		return nil, fmt.Errorf("%w: text %d, image %d, expected %d",
			ErrDimensionMismatch, len(textVec), len(imageVec), e.dim)
	}

	imageWeight := 1.0 - textWeight
	combined := make([]float32, e.dim)
	for i := range combined {
		combined[i] = float32(textWeight)*textVec[i] + float32(imageWeight)*imageVec[i]
	}
	return e.normalized(combined)
}

// Similarity returns the dot product of two vectors. For unit vectors this is
// their cosine similarity. Vectors of different lengths have no meaningful
// similarity and score 0.
func Similarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot float32
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}

// normalized scales a vector to unit Euclidean length and verifies its
// dimension against the engine configuration.
func (e *Engine) normalized(vec []float32) ([]float32, error) {
	if len(vec) != e.dim {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrDimensionMismatch, len(vec), e.dim)
	}

	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return nil, ErrZeroVector
	}

	norm := float32(math.Sqrt(sumSquares))
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = v / norm
	}
	return out, nil
}

package embedding

import "context"

// Encoder maps text or image bytes to fixed-dimension real vectors.
// Implementations must be thread-safe for concurrent use; the Engine itself
// never mutates the encoder after construction.
//
// Encoder output is not assumed to be normalized; the Engine normalizes at
// the boundary. Implementations that cannot embed images return
// ErrImageNotSupported from EmbedImage.
type Encoder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch, in input order. Batch calls are more efficient than repeated
	// EmbedText calls.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedImage generates a vector embedding for already-decoded image
	// bytes. The Engine verifies the bytes decode as an image before calling.
	EmbedImage(ctx context.Context, data []byte) ([]float32, error)
}

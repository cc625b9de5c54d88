// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package clip provides an embedding.Encoder backed by a CLIP inference
// sidecar. CLIP embeds text and images into one shared metric space, which is
// what makes multimodal fusion in the pipeline meaningful.
//
// The sidecar exposes two endpoints:
//
//	POST {host}/embed/text   {"text": "..."}          -> {"embedding": [...]}
//	POST {host}/embed/image  raw image bytes          -> {"embedding": [...]}
package clip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/lostvec/embedding"
)

const defaultTimeout = 60 * time.Second

// Encoder implements embedding.Encoder over a CLIP sidecar's HTTP API.
type Encoder struct {
	host   string
	client *http.Client
	logger *slog.Logger
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithHTTPClient sets a custom HTTP client.
// Default uses a 60s timeout; the first request after sidecar start may block
// on model load.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Encoder) {
		if client != nil {
			e.client = client
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Encoder) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// NewEncoder creates an encoder talking to the CLIP sidecar at host,
// e.g. "http://localhost:8091".
func NewEncoder(host string, opts ...Option) (*Encoder, error) {
	host = strings.TrimSuffix(strings.TrimSpace(host), "/")
	if host == "" {
		return nil, embedding.ErrEncoderUnavailable
	}

	e := &Encoder{
		host:   host,
		client: &http.Client{Timeout: defaultTimeout},
		logger: slog.Default().With("component", "clip-encoder"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

type textRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// EmbedText generates a vector embedding for a single text string.
func (e *Encoder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(textRequest{Text: text})
	if err != nil {
		return nil, err
	}
	return e.post(ctx, "/embed/text", "application/json", bytes.NewReader(body))
}

// EmbedTexts generates embeddings for multiple texts. The sidecar API is
// single-text, so the batch is issued sequentially; order is preserved.
func (e *Encoder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.EmbedText(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// EmbedImage generates a vector embedding for raw image bytes.
func (e *Encoder) EmbedImage(ctx context.Context, data []byte) ([]float32, error) {
	return e.post(ctx, "/embed/image", "application/octet-stream", bytes.NewReader(data))
}

func (e *Encoder) post(ctx context.Context, path, contentType string, body io.Reader) ([]float32, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.host+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Error("encoder request failed", "path", path, "err", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("encoder returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var decoded embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding encoder response: %w", err)
	}
	return decoded.Embedding, nil
}

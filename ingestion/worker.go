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


package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/lostvec/convert"
	"github.com/poiesic/lostvec/core"
	"github.com/poiesic/lostvec/embedding"
	"github.com/poiesic/lostvec/queue"
	"github.com/poiesic/lostvec/storage"
)

// Stats holds per-instance processing counters.
// Updated only from the worker's own goroutine; no locking.
type Stats struct {
	Processed int // records published and acked
	WithImage int // published with a fused image embedding
	TextOnly  int // published from the text embedding alone
	Rejected  int // dropped without requeue (malformed or invalid)
	Requeued  int // nacked back to the queue
}

// Worker is the ingestion state machine. It processes exactly one delivery
// at a time; run several Worker instances against the same queue to scale
// out (competing consumers).
type Worker struct {
	consumer   queue.Consumer
	publisher  queue.Publisher
	engine     *embedding.Engine
	converter  *convert.Converter
	fetcher    storage.Fetcher // nil in text-only deployments
	textWeight float64
	publishKey string
	logger     *slog.Logger
	stats      Stats
}

// Option configures a Worker.
type Option func(*Worker) error

// WithFetcher wires an object store for image retrieval.
// Without it every item is processed text-only.
func WithFetcher(fetcher storage.Fetcher) Option {
	return func(w *Worker) error {
		w.fetcher = fetcher
		return nil
	}
}

// WithTextWeight sets the fusion weight given to the text embedding; the
// image receives the remainder. Default is 0.6, favoring text.
func WithTextWeight(weight float64) Option {
	return func(w *Worker) error {
		if weight < 0 || weight > 1 {
			return fmt.Errorf("%w: %v", embedding.ErrInvalidWeight, weight)
		}
		w.textWeight = weight
		return nil
	}
}

// WithPublishKey overrides the outbound routing key.
func WithPublishKey(key string) Option {
	return func(w *Worker) error {
		if key != "" {
			w.publishKey = key
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
		return nil
	}
}

// NewWorker creates a worker with zeroed stats and its own Converter.
func NewWorker(consumer queue.Consumer, publisher queue.Publisher, engine *embedding.Engine, opts ...Option) (*Worker, error) {
	if consumer == nil {
		return nil, ErrConsumerRequired
	}
	if publisher == nil {
		return nil, ErrPublisherRequired
	}
	if engine == nil {
		return nil, ErrEngineRequired
	}

	w := &Worker{
		consumer:   consumer,
		publisher:  publisher,
		engine:     engine,
		textWeight: embedding.DefaultTextWeight,
		publishKey: "item.embedded",
		logger:     slog.Default().With("component", "worker"),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	w.converter = convert.NewConverter(convert.WithLogger(w.logger))
	return w, nil
}

// Stats returns a copy of the current counters.
func (w *Worker) Stats() Stats {
	return w.stats
}

// Run consumes deliveries until ctx is canceled, the delivery stream closes,
// or a configuration fault occurs. An in-flight message always finishes its
// step sequence before Run returns; it is never acked half-processed.
func (w *Worker) Run(ctx context.Context) error {
	deliveries, err := w.consumer.Consume(ctx)
	if err != nil {
		return err
	}

	w.logger.Info("worker started", "text_weight", w.textWeight, "dimension", w.engine.Dimension())
	for d := range deliveries {
		if err := w.handle(ctx, d); err != nil {
			return err
		}
	}

	w.logger.Info("delivery stream closed, worker stopping",
		"processed", w.stats.Processed, "rejected", w.stats.Rejected, "requeued", w.stats.Requeued)
	return nil
}

// handle resolves acknowledgment for one delivery. It returns an error only
// for fatal configuration faults, which stop the run loop.
func (w *Worker) handle(ctx context.Context, d queue.Delivery) error {
	outcome, err := w.process(ctx, d.Body())

	switch outcome {
	case OutcomeSuccess:
		if ackErr := d.Ack(); ackErr != nil {
			// The publish already happened; the broker will redeliver and
			// the downstream upsert absorbs the duplicate.
			w.logger.Error("failed to ack delivery", "err", ackErr)
		}
	case OutcomeMalformed, OutcomeInvalid:
		w.stats.Rejected++
		w.logger.Error("rejecting delivery", "outcome", outcome, "err", err)
		if nackErr := d.Nack(false); nackErr != nil {
			w.logger.Error("failed to nack delivery", "err", nackErr)
		}
	case OutcomeRetryable:
		w.stats.Requeued++
		w.logger.Error("requeueing delivery", "err", err)
		if nackErr := d.Nack(true); nackErr != nil {
			w.logger.Error("failed to nack delivery", "err", nackErr)
		}
	case OutcomeFatal:
		// Requeue so a correctly configured instance can pick it up, then
		// stop rather than keep mis-processing.
		w.stats.Requeued++
		if nackErr := d.Nack(true); nackErr != nil {
			w.logger.Error("failed to nack delivery", "err", nackErr)
		}
		return fmt.Errorf("configuration fault, stopping worker: %w", err)
	}
	return nil
}

// process runs one payload through the Normalized -> Validated -> Embedded ->
// Fused -> Published sequence and classifies the result.
func (w *Worker) process(ctx context.Context, payload []byte) (Outcome, error) {
	var raw core.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return OutcomeMalformed, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	item := w.converter.Normalize(raw)
	w.logger.Info("received message", "item_id", item.ItemID)

	if err := core.ValidateItem(item); err != nil {
		return OutcomeInvalid, err
	}

	textVec, err := w.engine.EncodeText(ctx, EmbeddingText(item))
	if err != nil {
		return classify(err), fmt.Errorf("text embedding for %s: %w", item.ItemID, err)
	}

	imageVec, fatalErr := w.imageEmbedding(ctx, item)
	if fatalErr != nil {
		return OutcomeFatal, fatalErr
	}

	fused := textVec
	if imageVec != nil {
		// Diagnostic only; a low score is never grounds for rejection.
		w.logger.Info("text-image similarity",
			"item_id", item.ItemID, "similarity", embedding.Similarity(textVec, imageVec))

		fused, err = w.engine.Combine(textVec, imageVec, w.textWeight)
		if err != nil {
			return classify(err), fmt.Errorf("fusing embeddings for %s: %w", item.ItemID, err)
		}
	}
	if len(fused) != w.engine.Dimension() {
		return OutcomeFatal, fmt.Errorf("%w: fused vector has %d dimensions, expected %d",
			embedding.ErrDimensionMismatch, len(fused), w.engine.Dimension())
	}

	record := core.OutputRecord{
		ItemID:            item.ItemID,
		Embedding:         fused,
		Title:             item.Title,
		Description:       item.Description,
		Category:          item.Category,
		Location:          item.Location,
		DateLost:          item.DateLost,
		ImageKey:          item.ImageKey,
		ContactInfo:       item.ContactInfo,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		HasImageEmbedding: imageVec != nil,
	}

	body, err := json.Marshal(record)
	if err != nil {
		return OutcomeRetryable, fmt.Errorf("marshaling output record for %s: %w", item.ItemID, err)
	}

	// The message ID fingerprints the inbound payload, not the marshaled
	// record: the record carries a publish-time timestamp, so a redelivery
	// republished later must still produce the same ID for downstream dedup.
	if err := w.publisher.Publish(ctx, w.publishKey, body, core.Fingerprint(payload)); err != nil {
		return OutcomeRetryable, fmt.Errorf("publishing record for %s: %w", item.ItemID, err)
	}

	w.stats.Processed++
	if imageVec != nil {
		w.stats.WithImage++
	} else {
		w.stats.TextOnly++
	}
	w.logger.Info("published record", "item_id", item.ItemID, "has_image_embedding", imageVec != nil)
	return OutcomeSuccess, nil
}

// imageEmbedding fetches and embeds the item's image. A missing, oversized or
// undecodable image is not grounds for failing the item: the worker logs a
// warning and returns a nil vector so processing continues text-only. Only
// configuration faults are returned as errors.
func (w *Worker) imageEmbedding(ctx context.Context, item *core.NormalizedItem) ([]float32, error) {
	if !item.HasImage() || w.fetcher == nil {
		return nil, nil
	}

	res, err := w.fetcher.Fetch(ctx, item.ImageKey)
	if err != nil {
		w.logger.Warn("image fetch failed, continuing text-only", "item_id", item.ItemID, "key", item.ImageKey, "err", err)
		return nil, nil
	}
	if res.Status != storage.FetchOK {
		w.logger.Warn("image unavailable, continuing text-only", "item_id", item.ItemID, "key", item.ImageKey, "status", res.Status)
		return nil, nil
	}

	vec, err := w.engine.EncodeImage(ctx, res.Data)
	if err != nil {
		if outcome := classify(err); outcome == OutcomeFatal {
			return nil, fmt.Errorf("image embedding for %s: %w", item.ItemID, err)
		}
		w.logger.Warn("image embedding failed, continuing text-only", "item_id", item.ItemID, "err", err)
		return nil, nil
	}
	return vec, nil
}

// EmbeddingText builds the enriched text the text embedding is computed from.
// The template repeats the title for emphasis, then appends the description
// and labeled category and location:
//
//	"<title> <title> <description> category: <category> location: <location>"
//
// Empty fields are skipped.
func EmbeddingText(item *core.NormalizedItem) string {
	var parts []string
	if item.Title != "" {
		parts = append(parts, item.Title+" "+item.Title)
	}
	if item.Description != "" {
		parts = append(parts, item.Description)
	}
	if item.Category != "" {
		parts = append(parts, "category: "+item.Category)
	}
	if item.Location != "" {
		parts = append(parts, "location: "+item.Location)
	}
	return convert.CollapseWhitespace(strings.Join(parts, " "))
}

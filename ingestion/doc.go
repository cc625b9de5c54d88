// Package ingestion orchestrates the lost-item embedding pipeline.
//
// A Worker drains one message at a time from the queue, normalizes and
// validates it, optionally fetches the item's image, computes and fuses
// embeddings, publishes the resulting record, and acknowledges the inbound
// message only after the publish succeeds. Processing is strictly sequential
// per worker; concurrency comes from running multiple competing workers
// against the same queue.
//
// Failure handling follows a fixed taxonomy: unparseable payloads and
// validation failures are rejected without requeue (redelivery cannot fix
// them), missing or undecodable images downgrade the item to text-only,
// configuration faults stop the worker, and everything else is requeued.
package ingestion

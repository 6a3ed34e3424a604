// Package ingestion provides the asynchronous ingestion lifecycle for
// file-search stores.
//
// The Pipeline type manages the ingestion workflow for one file:
//   - MIME type resolution (explicit, extension, content sniffing, fallback)
//   - Upload submission to a store
//   - Waiting for the upload operation to complete
//   - Waiting for the created document to become active
//
// The two waits are independent remote phases: upload acceptance and content
// processing. The Poller drives both with bounded sleep-and-retry loops and
// guarantees exactly one terminal outcome per wait. Batches are processed
// concurrently over a worker pool.
package ingestion

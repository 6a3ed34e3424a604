// Package mock provides test doubles for the ai package interfaces.
//
// The mocks use function fields for behavior injection and keep per-method
// call counts for assertions. MockFileSearch additionally supports scripted
// operation and document-state sequences, which the ingestion poller tests
// use to drive exact polling scenarios without a network.
package mock

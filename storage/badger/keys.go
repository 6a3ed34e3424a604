package badger

import (
	"fmt"

	"github.com/tessero/ragdesk/core"
)

// Key prefixes for different data types
const (
	documentRecordPrefix = "docrec"
	documentNamePrefix   = "docname"
	sessionStoreKey      = "sesstore"
)

// makeDocumentRecordKey generates a key for a catalog entry by ID.
func makeDocumentRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentRecordPrefix, id))
}

// makeDocumentNameKey generates a key for the resource-name index.
// Format: prefix:documentName
func makeDocumentNameKey(documentName string) []byte {
	return []byte(documentNamePrefix + ":" + documentName)
}

// makeSessionStoreKey returns the key holding the active store identifier.
func makeSessionStoreKey() []byte {
	return []byte(sessionStoreKey)
}

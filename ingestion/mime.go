package ingestion

import (
	"mime"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

const fallbackMIMEType = "application/octet-stream"

// ResolveMIMEType determines the MIME type for an upload. Resolution order:
// an explicit type wins; then the filename extension; then content sniffing;
// then a generic binary fallback. Resolution never fails; ingestion must not
// abort merely because the type could not be inferred.
func ResolveMIMEType(path, explicit string, data []byte) string {
	if explicit != "" {
		return explicit
	}

	if ext := filepath.Ext(path); ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}

	if len(data) > 0 {
		return mimetype.Detect(data).String()
	}

	return fallbackMIMEType
}

package ingestion

// Monitor provides hooks to observe ingestion progress.
// Implement this interface to report incremental progress to a user;
// the pipeline's correctness does not depend on it.
type Monitor interface {
	UploadStarted(path string)
	UploadAccepted(path, operationName string)
	DocumentCreated(path, documentName string)
	DocumentActive(path, documentName string)
	Failed(path string, err error)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) UploadStarted(_ string)      {}
func (n *noopMonitor) UploadAccepted(_, _ string)  {}
func (n *noopMonitor) DocumentCreated(_, _ string) {}
func (n *noopMonitor) DocumentActive(_, _ string)  {}
func (n *noopMonitor) Failed(_ string, _ error)    {}

package recorder

import "CryptoSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSnapshot(_ *Snapshot) error         { return nil }
func (n *NoopRecorder) RecordSignalChange(_ *SignalChange) error { return nil }
func (n *NoopRecorder) LatestDirection(_ string, _ model.Interval) (model.Direction, bool, error) {
	return "", false, nil
}
func (n *NoopRecorder) Close() error { return nil }

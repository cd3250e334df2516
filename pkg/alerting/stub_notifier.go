package alerting

import (
	"context"
	"errors"
)

// RecordingNotifier captures delivered events for tests. When Fail is set it
// rejects every delivery instead.
type RecordingNotifier struct {
	Fail   bool
	Events []AlertEvent
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

func (n *RecordingNotifier) Name() string { return "recording" }

func (n *RecordingNotifier) SendAlert(ctx context.Context, event AlertEvent) error {
	if n.Fail {
		return errors.New("delivery failed")
	}
	n.Events = append(n.Events, event)
	return nil
}

func (n *RecordingNotifier) Reset() {
	n.Events = nil
	n.Fail = false
}

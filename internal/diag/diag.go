package diag

import (
	"github.com/google/uuid"
)

// Status classifies a single diagnostic step.
type Status string

const (
	StatusInfo    Status = "info"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Step is one entry in a diagnostic log. Steps are append-only and are never
// mutated once recorded.
type Step struct {
	Message string `json:"message"`
	Status  Status `json:"status"`
	Details string `json:"details,omitempty"`
}

// Log collects the ordered diagnostic trail for a single pipeline invocation.
// Each invocation owns exactly one Log; nothing is shared across invocations.
type Log struct {
	id    string
	steps []Step
}

// NewLog creates an empty log with a fresh invocation id.
func NewLog() *Log {
	return &Log{id: uuid.NewString()}
}

// ID returns the invocation id assigned at construction.
func (l *Log) ID() string {
	return l.id
}

// Append records a step with the given status.
func (l *Log) Append(status Status, message string) {
	l.steps = append(l.steps, Step{Message: message, Status: status})
}

// AppendDetails records a step carrying extra detail text.
func (l *Log) AppendDetails(status Status, message, details string) {
	l.steps = append(l.steps, Step{Message: message, Status: status, Details: details})
}

func (l *Log) Info(message string)    { l.Append(StatusInfo, message) }
func (l *Log) Pending(message string) { l.Append(StatusPending, message) }
func (l *Log) Success(message string) { l.Append(StatusSuccess, message) }
func (l *Log) Warning(message string) { l.Append(StatusWarning, message) }
func (l *Log) Error(message string)   { l.Append(StatusError, message) }

// Steps returns the recorded steps in append order. The returned slice is a
// copy so callers cannot rewrite history.
func (l *Log) Steps() []Step {
	out := make([]Step, len(l.steps))
	copy(out, l.steps)
	return out
}

// Len reports the number of recorded steps.
func (l *Log) Len() int {
	return len(l.steps)
}

package monitor

import (
	"github.com/christian-pebl/DataApp-sub010/internal/diag"
)

// Result is the envelope every pipeline operation returns. Log is always
// populated, regardless of outcome; it is the caller-facing diagnostic trail.
type Result struct {
	Success      bool        `json:"success"`
	Data         any         `json:"data,omitempty"`
	Error        string      `json:"error,omitempty"`
	InvocationID string      `json:"invocationId"`
	Log          []diag.Step `json:"log"`
}

func newResult(data any, log *diag.Log, err error) Result {
	r := Result{
		InvocationID: log.ID(),
		Log:          log.Steps(),
	}
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Success = true
	r.Data = data
	return r
}

package providers

import "fmt"

// UpstreamHTTPError reports a non-2xx response from a provider. Body carries
// the raw response text for diagnostics.
type UpstreamHTTPError struct {
	Status int
	Step   string
	Body   string
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("%s: upstream returned HTTP %d", e.Step, e.Status)
}

// UpstreamDataError reports a response that parsed but is semantically
// invalid: an explicit provider error flag, misaligned columnar arrays, or an
// undecodable body.
type UpstreamDataError struct {
	Step   string
	Reason string
}

func (e *UpstreamDataError) Error() string {
	if e.Step == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Step, e.Reason)
}

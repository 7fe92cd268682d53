package services

import "context"

// Oracle is the external reasoning capability consulted for NPC decisions.
// Its output is untrusted text; callers must parse defensively and fall
// back when it fails.
type Oracle interface {
	// Complete sends a system role and user prompt to the model and
	// returns the raw text reply. Any transport, rate-limit, or
	// server-side failure is reported as an *OracleError.
	Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// OracleError wraps any failure reaching or parsing the reasoning model.
// The decision pipeline absorbs these by falling back; they never surface
// to API callers as hard failures.
type OracleError struct {
	Err error
}

func (e *OracleError) Error() string {
	return "oracle: " + e.Err.Error()
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

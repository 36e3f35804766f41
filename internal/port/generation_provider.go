package port

import "context"

// GenerationProvider is the external text-generation capability used to
// synthesize schemas, problem SQL and feedback text. Implementations return
// unstructured text; parsing is the caller's concern. Failures surface as
// domain errors with LLM_CONNECTION_ERROR, LLM_TIMEOUT or
// LLM_INVALID_RESPONSE codes.
type GenerationProvider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error)
}

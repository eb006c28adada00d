package assistant

import "context"

// Provider is the interface for any analysis backend: the session hands it
// the transcript to date and expects a single text reply. Transport errors,
// non-success responses, and malformed payloads are all plain errors; the
// session does not distinguish them.
type Provider interface {
	Exchange(ctx context.Context, req *ExchangeRequest) (*ExchangeReply, error)
}

// ExchangeRequest is the input to the analysis backend: the system prompt
// plus the ordered transcript, role and content only.
type ExchangeRequest struct {
	System string
	Turns  []Turn
}

// ExchangeReply is the backend's generated reply.
type ExchangeReply struct {
	Text  string
	Model string
}

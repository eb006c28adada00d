package assistant

// Role identifies who authored a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// State tracks where a session is in its request lifecycle.
type State string

const (
	// StateIdle means no exchange is in flight; Send is accepted.
	StateIdle State = "idle"

	// StateAwaiting means an exchange has been dispatched and the session
	// is waiting for the reply. Send is rejected until it completes.
	StateAwaiting State = "awaiting-response"

	// StateError is reserved. Dispatch failures are recorded in the
	// transcript and the session recovers to idle, so nothing sets it today.
	StateError State = "error"
)

// Turn is a single entry in a session transcript. Turns are never reordered
// or mutated after they are appended.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

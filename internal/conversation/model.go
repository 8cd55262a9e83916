// README: Conversation data model (roles, messages, phases, info categories).
package conversation

import "errors"

// Role tags who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one turn in a session's log. Timestamp is a logical ordering
// hint supplied by the caller, not an authoritative wall clock.
type Message struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// Phase classifies a conversation at a point in time. It is always
// recomputed from the full log, never cached, so it can't go stale.
type Phase string

const (
	PhaseGathering    Phase = "gathering"
	PhaseRecommending Phase = "recommending"
)

// Category labels one kind of information the planner needs before it can
// recommend anything.
type Category string

const (
	CategoryDestination Category = "destination"
	CategoryBudget      Category = "budget"
	CategoryDates       Category = "dates"
)

// ErrBadMessage is returned when a message is missing a role or content.
var ErrBadMessage = errors.New("message must have a role and content")

// Validate checks every message has a non-empty role and content.
func Validate(msgs []Message) error {
	if len(msgs) == 0 {
		return ErrBadMessage
	}
	for _, m := range msgs {
		if m.Role == "" || m.Content == "" {
			return ErrBadMessage
		}
	}
	return nil
}

package secondary

import "context"

// UserEvent is a notification published to observers of a single user.
type UserEvent struct {
	Type      string `json:"type"`
	UserID    string `json:"userId"`
	ProblemID string `json:"problemId,omitempty"`
}

// Notifier delivers user events best-effort. A failed notification must
// never fail the operation that produced it.
type Notifier interface {
	Notify(ctx context.Context, userID string, event UserEvent) error
}

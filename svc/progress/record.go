package progress

import (
	"time"

	"github.com/google/uuid"
)

// Status is the viewer-reported state of one article.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Record tracks one user's state on one article. Records are keyed by
// (user, article); repeated upserts replace rather than duplicate.
// CompletedAt is set server-side on the transition into done and is never
// accepted from the client.
type Record struct {
	UserID      uuid.UUID  `json:"userId"`
	ArticleID   string     `json:"taskId"`
	Status      Status     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

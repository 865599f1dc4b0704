package content

import "time"

// AccessLevel controls who may read an article's full body.
type AccessLevel string

const (
	// AccessFree articles are readable by any viewer, anonymous included.
	AccessFree AccessLevel = "free"
	// AccessMember articles require an active subscription.
	AccessMember AccessLevel = "member"
)

// Article is a single piece of content. It is authored in the CMS and
// treated as read-only here; the import pipeline is the only writer.
type Article struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        string      `json:"type"` // article, video, exercise
	Categories  []string    `json:"categories"`
	AccessLevel AccessLevel `json:"accessLevel"`
	Body        string      `json:"body"`
	Slug        string      `json:"slug"`
	VideoID     string      `json:"videoId,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Published   bool        `json:"published"`
}

// Gated reports whether the article requires entitlement to read in full.
func (a Article) Gated() bool {
	return a.AccessLevel == AccessMember
}

// Quest is an ordered group of articles inside a lesson.
type Quest struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	ArticleIDs []string `json:"articleIds"`
}

// Lesson owns an ordered list of quests. The hierarchy is navigation and
// progress-rollup structure only; it never affects access gating.
type Lesson struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Slug   string  `json:"slug"`
	Quests []Quest `json:"quests"`
}

// ArticleIDs flattens the quest tree into the lesson's ordered article list.
func (l Lesson) ArticleIDs() []string {
	var out []string
	for _, q := range l.Quests {
		out = append(out, q.ArticleIDs...)
	}
	return out
}

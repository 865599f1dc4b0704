package content

// Kind distinguishes the three non-failure outcomes of a fetch. Hard
// failures (not found, transport, server) are ordinary error returns and
// never appear as a Result.
type Kind int

const (
	// KindGranted means full access: the article body is complete.
	KindGranted Kind = iota + 1
	// KindPreview means access was denied but a truncated body is offered
	// alongside the denial reason.
	KindPreview
	// KindDenied means access was denied and no preview is available.
	KindDenied
)

// Result is the outcome of an access-gated fetch. Exactly one of the three
// kinds holds; callers switch on Kind() and use Article()/Reason()
// accordingly.
type Result struct {
	kind    Kind
	article Article
	reason  string
}

// GrantedResult wraps a fully accessible article.
func GrantedResult(a Article) Result {
	return Result{kind: KindGranted, article: a}
}

// PreviewResult wraps a truncated article body with the denial reason.
func PreviewResult(a Article, reason string) Result {
	return Result{kind: KindPreview, article: a, reason: reason}
}

// DeniedResult carries only the denial reason.
func DeniedResult(reason string) Result {
	return Result{kind: KindDenied, reason: reason}
}

// Kind returns which outcome this result holds.
func (r Result) Kind() Kind {
	return r.kind
}

// Article returns the article payload and whether one is present. Denied
// results carry no article.
func (r Result) Article() (Article, bool) {
	return r.article, r.kind == KindGranted || r.kind == KindPreview
}

// Reason returns the human-readable denial reason. Empty for granted
// results.
func (r Result) Reason() string {
	return r.reason
}

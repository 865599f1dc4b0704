// Package content serves access-gated articles and the lesson hierarchy.
//
// A fetch has exactly three non-failure outcomes: granted (full body),
// preview (truncated body plus a denial reason), or denied (reason only).
// The precedence rule is fixed: a response carrying both a body and an
// error is a preview denial, never a hard failure.
package content

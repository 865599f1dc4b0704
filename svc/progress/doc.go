// Package progress records per-article completion and rolls it up into
// lesson summaries with a discrete growth stage.
package progress

package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrymomot/growthlab/svc/content"
)

// articleWriter is the subset of the content store the importer needs.
type articleWriter interface {
	UpsertArticle(ctx context.Context, a content.Article) (created bool, err error)
}

// articleIndexer mirrors articles into the search index.
type articleIndexer interface {
	Index(ctx context.Context, a content.Article) error
}

type runSummary struct {
	created int
	updated int
	skipped int
	failed  int
}

// importer runs the transform-and-write pipeline. A failing record is
// logged and counted; the batch always continues.
type importer struct {
	store   articleWriter
	index   articleIndexer
	assets  assetUploader
	execute bool
}

func (imp *importer) Run(ctx context.Context, items []webflowItem) runSummary {
	var summary runSummary

	for _, item := range items {
		label := item.field("slug")
		if label == "" {
			label = item.ID
		}

		if item.IsArchived {
			fmt.Printf("skipped  %s (archived)\n", label)
			summary.skipped++
			continue
		}

		article, err := transform(ctx, item, imp.assets)
		if err != nil {
			fmt.Printf("failed   %s: %v\n", label, err)
			summary.failed++
			continue
		}

		if !imp.execute {
			fmt.Printf("preview  %s\n", label)
			printArticle(article)
			summary.skipped++
			continue
		}

		created, err := imp.store.UpsertArticle(ctx, article)
		if err != nil {
			fmt.Printf("failed   %s: %v\n", label, err)
			summary.failed++
			continue
		}

		if imp.index != nil {
			if err := imp.index.Index(ctx, article); err != nil {
				// The row is written; a stale index entry is recoverable
				// by re-running the import.
				fmt.Printf("warn     %s: search index: %v\n", label, err)
			}
		}

		if created {
			fmt.Printf("created  %s\n", label)
			summary.created++
		} else {
			fmt.Printf("updated  %s\n", label)
			summary.updated++
		}
	}

	return summary
}

// printArticle renders the transformation a preview run would persist, with
// the body elided to keep the output readable.
func printArticle(a content.Article) {
	display := a
	if len(display.Body) > 200 {
		display.Body = display.Body[:200] + "..."
	}
	out, err := json.MarshalIndent(display, "  ", "  ")
	if err != nil {
		fmt.Printf("  %+v\n", display)
		return
	}
	fmt.Printf("  %s\n", out)
}

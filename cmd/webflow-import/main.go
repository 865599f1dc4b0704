package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/growthlab/pkg/config"
	"github.com/dmitrymomot/growthlab/pkg/opensearch"
	"github.com/dmitrymomot/growthlab/pkg/pg"
	"github.com/dmitrymomot/growthlab/pkg/storage"
	"github.com/dmitrymomot/growthlab/svc/content"
)

// importConfig toggles the optional write targets. Credentials for each
// come from the respective package configs.
type importConfig struct {
	MigrateAssets bool `env:"IMPORT_MIGRATE_ASSETS" envDefault:"false"`
	IndexSearch   bool `env:"IMPORT_INDEX_SEARCH" envDefault:"false"`
}

func main() {
	var (
		preview = flag.Bool("preview", false, "print transformations without writing")
		execute = flag.Bool("execute", false, "write transformed records")
		test    = flag.Bool("test", false, "process only the first 3 records")
		all     = flag.Bool("all", false, "process every record in the collection")
		slug    = flag.String("slug", "", "process only the record with this slug")
	)
	flag.Parse()

	if *preview == *execute {
		fmt.Fprintln(os.Stderr, "exactly one of --preview or --execute is required")
		os.Exit(2)
	}
	if !*test && !*all && *slug == "" {
		fmt.Fprintln(os.Stderr, "select records with --test, --all or --slug=<x>")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, options{
		execute:  *execute,
		testOnly: *test,
		slug:     *slug,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "import failed:", err)
		os.Exit(1)
	}
}

type options struct {
	execute  bool
	testOnly bool
	slug     string
}

func run(ctx context.Context, opts options) error {
	var cfg importConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	var wfCfg webflowConfig
	if err := config.Load(&wfCfg); err != nil {
		return err
	}
	client := newWebflowClient(wfCfg)

	imp := &importer{execute: opts.execute}

	if opts.execute {
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()
		imp.store = content.NewPgStore(pool)

		if cfg.IndexSearch {
			var osCfg opensearch.Config
			if err := config.Load(&osCfg); err != nil {
				return err
			}
			osClient, err := opensearch.New(ctx, osCfg)
			if err != nil {
				return fmt.Errorf("connect opensearch: %w", err)
			}
			imp.index = content.NewSearchIndex(osClient, "")
		}
	}

	// Asset mirroring writes to storage, so preview runs leave it off and
	// show the original asset URLs instead.
	if cfg.MigrateAssets && opts.execute {
		var s3Cfg storage.Config
		if err := config.Load(&s3Cfg); err != nil {
			return err
		}
		s3, err := storage.New(ctx, s3Cfg)
		if err != nil {
			return fmt.Errorf("connect storage: %w", err)
		}
		imp.assets = s3
	}

	items, err := client.ListItems(ctx)
	if err != nil {
		return err
	}
	items = selectItems(items, opts)
	if len(items) == 0 {
		return fmt.Errorf("no matching records")
	}

	summary := imp.Run(ctx, items)
	fmt.Printf("\ndone: %d created, %d updated, %d skipped, %d failed (of %d)\n",
		summary.created, summary.updated, summary.skipped, summary.failed, len(items))

	if summary.failed > 0 && summary.created+summary.updated+summary.skipped == 0 {
		return fmt.Errorf("all %d records failed", summary.failed)
	}
	return nil
}

func selectItems(items []webflowItem, opts options) []webflowItem {
	if opts.slug != "" {
		for _, item := range items {
			if item.field("slug") == opts.slug {
				return []webflowItem{item}
			}
		}
		return nil
	}
	if opts.testOnly && len(items) > 3 {
		return items[:3]
	}
	return items
}

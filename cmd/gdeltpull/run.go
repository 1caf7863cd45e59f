package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pevans/gdeltpull/gdelt"
	"github.com/pevans/gdeltpull/output"
	"github.com/pevans/gdeltpull/summarize"
	"github.com/pevans/gdeltpull/translate"
)

// runPull executes one complete pull: timeline aggregates, the paginated
// article list, optional translation, deduplicated variants, stats, and the
// zip export. Page and translation failures are reported and skipped; only
// a failure to persist the result is fatal.
func runPull(ctx context.Context, client *gdelt.Client, params *gdelt.Params, dir string) error {
	// Timeline aggregates first; each is a single request and a single CSV.
	for _, mode := range params.TimelineModes() {
		body, err := client.FetchTimeline(ctx, *params, mode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to pull %s: %v\n", mode, err)
			continue
		}
		path := filepath.Join(dir, mode+".csv")
		if err := os.WriteFile(path, body, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	// The article list, checkpointed after every page so an interrupted run
	// still leaves a usable partial file.
	fmt.Println("Pulling data for: ArtList")
	artListPath := filepath.Join(dir, "ArtList.csv")
	client.OnPage = func(table *gdelt.Table) {
		if err := output.WriteCSV(artListPath, table.Articles()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to checkpoint article list: %v\n", err)
		}
	}

	table, pageErrors, err := client.FetchArticles(ctx, *params)
	if err != nil {
		return err
	}
	for _, pageErr := range pageErrors {
		fmt.Fprintf(os.Stderr, "Warning: skipped %v\n", pageErr.Error())
	}

	// Final authoritative writes; a partial table with page errors is still
	// persisted.
	if err := output.WriteCSV(artListPath, table.Articles()); err != nil {
		return err
	}
	if err := output.WriteJSON(filepath.Join(dir, "ArtList.json"), table.Articles()); err != nil {
		return err
	}
	fmt.Printf("✓ Pulled %d articles (%d pages skipped)\n", table.Len(), len(pageErrors))

	if params.Translation != "" {
		if err := translateTitles(ctx, table, params.Translation, dir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: translation skipped: %v\n", err)
		}
	}

	// A second file with repeated headlines collapsed; the same story is
	// frequently syndicated under "headline | source" variants.
	deduped := gdelt.DedupeByHeadline(table.Articles())
	if err := output.WriteCSV(filepath.Join(dir, "ArtListNoDuplicates.csv"), deduped); err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(summarize.FormatCounts("language", summarize.CountByLanguage(table.Articles())))
	fmt.Println()
	fmt.Print(summarize.FormatCounts("domain", summarize.CountByDomain(table.Articles())))

	zipPath := filepath.Join(filepath.Dir(dir), "output.zip")
	if err := output.Archive(dir, zipPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create archive: %v\n", err)
	} else {
		fmt.Printf("✓ Archived output files to %s\n", zipPath)
	}

	fmt.Printf("The program is done - %s contains the result files.\n", dir)
	return nil
}

// translateTitles translates every title in the table, using the persistent
// cache under the user's home directory when available, and writes the
// translated variant of the article list.
func translateTitles(ctx context.Context, table *gdelt.Table, target, dir string) error {
	var tr translate.Translator = translate.NewGoogleTranslator()

	if homeDir, err := os.UserHomeDir(); err == nil {
		cachePath := filepath.Join(homeDir, ".gdeltpull", "translations.db")
		if err := os.MkdirAll(filepath.Dir(cachePath), 0o700); err == nil {
			if store, err := translate.NewCacheStore(cachePath); err == nil {
				defer store.Close()
				tr = &translate.CachedTranslator{Store: store, Next: tr}
			} else {
				fmt.Fprintf(os.Stderr, "Warning: translation cache unavailable: %v\n", err)
			}
		}
	}

	fmt.Println("Translating titles in ArtList")
	result, err := translate.TranslateArticles(ctx, tr, table.Articles(), target)
	if err != nil {
		return err
	}
	if result.Failed > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d titles could not be translated and were flagged\n", result.Failed)
	}
	fmt.Printf("✓ Translated %d titles\n", result.Translated)

	return output.WriteCSV(filepath.Join(dir, "ArtListTranslated.csv"), table.Articles())
}

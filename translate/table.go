package translate

import (
	"context"

	"github.com/pevans/gdeltpull/gdelt"
)

// Result summarises a table translation pass.
type Result struct {
	Translated int
	Failed     int
	Skipped    int // empty titles
}

// TranslateArticles translates each record's title into the target language
// sequentially, filling TranslatedTitle in place. A per-record failure
// leaves the original title untouched and flags the record rather than
// failing the run, so the output always contains every record.
//
// The target code is validated before any service call; an invalid code
// aborts the whole pass.
func TranslateArticles(ctx context.Context, tr Translator, articles []gdelt.Article, target string) (Result, error) {
	if err := ValidateTarget(target); err != nil {
		return Result{}, err
	}

	var result Result
	for i := range articles {
		if articles[i].Title == "" {
			result.Skipped++
			continue
		}

		translated, err := tr.Translate(ctx, articles[i].Title, target)
		if err != nil {
			articles[i].TranslationFailed = true
			result.Failed++
			continue
		}

		articles[i].TranslatedTitle = translated
		articles[i].TranslationFailed = false
		result.Translated++
	}

	return result, nil
}

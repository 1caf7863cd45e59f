package translate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pevans/gdeltpull/gdelt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTranslator upper-cases text and fails on configured inputs.
type fakeTranslator struct {
	failOn map[string]bool
	calls  int
}

func (f *fakeTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	f.calls++
	if f.failOn[text] {
		return "", fmt.Errorf("service unavailable")
	}
	return "[" + target + "] " + text, nil
}

func TestValidateTarget(t *testing.T) {
	assert.NoError(t, ValidateTarget("en"))
	assert.NoError(t, ValidateTarget("pt-BR"))

	err := ValidateTarget("")
	assert.Error(t, err)

	err = ValidateTarget("!!!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid translation target")
}

func TestTranslateArticles(t *testing.T) {
	articles := []gdelt.Article{
		{URL: "u1", Title: "primera noticia"},
		{URL: "u2", Title: "segunda noticia"},
		{URL: "u3", Title: ""},
	}

	tr := &fakeTranslator{}
	result, err := TranslateArticles(context.Background(), tr, articles, "en")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Translated)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "[en] primera noticia", articles[0].TranslatedTitle)
	assert.Equal(t, "[en] segunda noticia", articles[1].TranslatedTitle)
}

func TestTranslateArticles_PerRecordFailureIsFlagged(t *testing.T) {
	articles := []gdelt.Article{
		{URL: "u1", Title: "ok one"},
		{URL: "u2", Title: "broken"},
		{URL: "u3", Title: "ok two"},
	}

	tr := &fakeTranslator{failOn: map[string]bool{"broken": true}}
	result, err := TranslateArticles(context.Background(), tr, articles, "en")
	require.NoError(t, err, "a per-record failure must not fail the run")

	// The run completes with 100% of records present; the failed one is
	// unmodified and flagged.
	assert.Equal(t, 2, result.Translated)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, articles, 3)

	assert.True(t, articles[1].TranslationFailed)
	assert.Equal(t, "broken", articles[1].Title)
	assert.Empty(t, articles[1].TranslatedTitle)

	assert.False(t, articles[0].TranslationFailed)
	assert.False(t, articles[2].TranslationFailed)
}

func TestTranslateArticles_InvalidTargetAborts(t *testing.T) {
	articles := []gdelt.Article{{URL: "u1", Title: "hello"}}
	tr := &fakeTranslator{}

	_, err := TranslateArticles(context.Background(), tr, articles, "!!!")
	require.Error(t, err)
	assert.Equal(t, 0, tr.calls, "no service call should be made for an invalid target")
}

func TestGoogleTranslator_Translate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "gtx", q.Get("client"))
		assert.Equal(t, "auto", q.Get("sl"))
		assert.Equal(t, "en", q.Get("tl"))
		assert.Equal(t, "hola mundo", q.Get("q"))
		fmt.Fprint(w, `[[["hello ","hola ",null,null,10],["world","mundo",null,null,10]],null,"es"]`)
	}))
	defer server.Close()

	tr := NewGoogleTranslator()
	tr.HTTPClient = server.Client()
	tr.Endpoint = server.URL

	got, err := tr.Translate(context.Background(), "hola mundo", "en")
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
}

func TestGoogleTranslator_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	tr := NewGoogleTranslator()
	tr.HTTPClient = server.Client()
	tr.Endpoint = server.URL

	_, err := tr.Translate(context.Background(), "hola", "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "translation service error")
}

func TestGoogleTranslator_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"not":"an array"}`)
	}))
	defer server.Close()

	tr := NewGoogleTranslator()
	tr.HTTPClient = server.Client()
	tr.Endpoint = server.URL

	_, err := tr.Translate(context.Background(), "hola", "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse translation response")
}

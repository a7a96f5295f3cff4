package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readDoc asserts the response status and parses the body.
func readDoc(t *testing.T, resp *http.Response, wantStatus int) *goquery.Document {
	t.Helper()
	defer func() {
		assert.NoError(t, resp.Body.Close())
	}()
	require.Equal(t, wantStatus, resp.StatusCode)
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

func testID(doc *goquery.Document, id string) string {
	return strings.TrimSpace(doc.Find("[data-testid='" + id + "']").First().Text())
}

func texts(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

func TestUserError(t *testing.T) {
	t.Parallel()

	_, _, ok := userError(assert.AnError)
	assert.False(t, ok)
}

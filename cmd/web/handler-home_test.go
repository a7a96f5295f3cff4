package main

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/soverain/internal/e2etest"
	"github.com/myrjola/soverain/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

func TestHome_withoutProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newTestClient(t, testhelpers.NewClock(testToday).Now)

	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("[data-testid='no-profile']").Length())
	assert.Equal(t, 1, doc.Find("form[action='/profile']").Length())
	assert.Equal(t, 0, doc.Find("form[action='/assessments']").Length(), "journaling needs a profile")
}

func TestSelectProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newTestClient(t, testhelpers.NewClock(testToday).Now)

	doc, err := client.SelectProfile(ctx, " Ruth ", "Grow in loyalty")
	require.NoError(t, err)
	assert.Equal(t, "Ruth", testID(doc, "active-profile"))
	assert.Equal(t, "Grow in loyalty", testID(doc, "goal"))
	assert.Equal(t, "—", testID(doc, "last-score"))
	assert.Equal(t, []string{"Profile updated."}, texts(doc, "p.flash"))
	assert.Equal(t, "0", testID(doc, "scenario-count"))
	assert.Equal(t, "—", testID(doc, "average-score"))

	// Selecting the profile again without a goal keeps the goal.
	doc, err = client.SelectProfile(ctx, "Ruth", "")
	require.NoError(t, err)
	assert.Equal(t, "Grow in loyalty", testID(doc, "goal"))

	// The flash is shown once.
	doc, err = client.GetDoc(ctx, "/")
	require.NoError(t, err)
	assert.Empty(t, texts(doc, "p.flash"))
}

func TestSelectProfile_blankName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newTestClient(t, testhelpers.NewClock(testToday).Now)

	resp, err := client.Submit(ctx, "/", "/profile", url.Values{"name": {"  "}})
	require.NoError(t, err)
	doc := readDoc(t, resp, http.StatusUnprocessableEntity)
	assert.Equal(t, []string{"Please fill in the required fields."}, texts(doc, "p.error"))
}

func TestSaveAssessment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newTestClient(t, testhelpers.NewClock(testToday).Now)
	_, err := client.SelectProfile(ctx, "Ruth", "")
	require.NoError(t, err)

	tests := []struct {
		name       string
		values     url.Values
		wantStatus int
		wantFlash  string
		wantError  string
	}{
		{
			name:       "aligned",
			values:     url.Values{"c": {"0.9"}, "h": {"0.9"}, "f": {"0.9"}},
			wantStatus: http.StatusOK,
			wantFlash:  "Life assessment saved with score 9.",
		},
		{
			name:       "out of range",
			values:     url.Values{"c": {"1.5"}, "h": {"0.9"}, "f": {"0.9"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "Christlikeness, Heart and Faithfulness must each be between 0 and 1.",
		},
		{
			name:       "not a number",
			values:     url.Values{"c": {"lots"}, "h": {"0.9"}, "f": {"0.9"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "Christlikeness, Heart and Faithfulness must each be between 0 and 1.",
		},
	}
	for _, tt := range tests {
		resp, err := client.Submit(ctx, "/", "/assessments", tt.values)
		require.NoError(t, err, tt.name)
		doc := readDoc(t, resp, tt.wantStatus)
		if tt.wantFlash != "" {
			assert.Equal(t, []string{tt.wantFlash}, texts(doc, "p.flash"), tt.name)
		}
		if tt.wantError != "" {
			assert.Equal(t, []string{tt.wantError}, texts(doc, "p.error"), tt.name)
		}
	}

	// Only the valid assessment was saved.
	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, "1", testID(doc, "assessment-count"))
	assert.Equal(t, "9", testID(doc, "last-score"))
	assert.Equal(t, "9.00", testID(doc, "average-score"))
	assert.Equal(t, "0.900", testID(doc, "average-g"))
	assert.Equal(t, "Aligned", testID(doc, "label"))
}

func TestSaveAssessment_withoutProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newTestClient(t, testhelpers.NewClock(testToday).Now)

	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)
	token, err := e2etest.CSRFToken(doc, "/profile")
	require.NoError(t, err)

	resp, err := client.Post(ctx, "/assessments", token, url.Values{"c": {"0.9"}, "h": {"0.9"}, "f": {"0.9"}})
	require.NoError(t, err)
	doc = readDoc(t, resp, http.StatusNotFound)
	assert.Equal(t, []string{"Profile not found. Please create a profile first."}, texts(doc, "p.error"))
}

func TestSaveAssessment_withoutCSRFToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newTestClient(t, testhelpers.NewClock(testToday).Now)
	_, err := client.SelectProfile(ctx, "Ruth", "")
	require.NoError(t, err)

	resp, err := client.Post(ctx, "/assessments", "forged", url.Values{"c": {"0.9"}, "h": {"0.9"}, "f": {"0.9"}})
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSaveGreatestCommands(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newTestClient(t, testhelpers.NewClock(testToday).Now)
	_, err := client.SelectProfile(ctx, "Ruth", "")
	require.NoError(t, err)

	// Faithfulness is fixed at 1, so G = ∛(0.729) = 0.9 needs C·H = 0.729.
	doc, err := client.SubmitForm(ctx, "/", "/greatest-commands",
		url.Values{"love_god": {"0.9"}, "love_neighbor": {"0.81"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Greatest Commands reflection saved with score 9."}, texts(doc, "p.flash"))
	assert.Equal(t, "1", testID(doc, "assessment-count"))
}

func TestSaveReflection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newTestClient(t, testhelpers.NewClock(testToday).Now)
	_, err := client.SelectProfile(ctx, "Ruth", "")
	require.NoError(t, err)

	_, err = client.SubmitForm(ctx, "/", "/assessments", url.Values{"c": {"0.9"}, "h": {"0.9"}, "f": {"0.9"}})
	require.NoError(t, err)
	doc, err := client.SubmitForm(ctx, "/", "/reflections", url.Values{
		"text": {"Stayed with Naomi"},
		"tags": {"loyalty"},
		"link": {"Last Assessment"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Reflection saved."}, texts(doc, "p.flash"))
	assert.Equal(t, "1", testID(doc, "reflection-count"))
	assert.Equal(t, []string{"9"}, texts(doc, "[data-testid='entries'] [data-testid='entry-score']"))

	resp, err := client.Submit(ctx, "/", "/reflections", url.Values{"text": {"  "}})
	require.NoError(t, err)
	doc = readDoc(t, resp, http.StatusUnprocessableEntity)
	assert.Equal(t, "1", testID(doc, "reflection-count"))

	resp, err = client.Submit(ctx, "/", "/reflections", url.Values{"text": {"Hi"}, "link": {"Yesterday"}})
	require.NoError(t, err)
	readDoc(t, resp, http.StatusUnprocessableEntity)
}

func TestHome_nudges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := testhelpers.NewClock(testToday)
	client := newTestClient(t, clock.Now)
	_, err := client.SelectProfile(ctx, "Ruth", "")
	require.NoError(t, err)

	doc, err := client.SubmitForm(ctx, "/", "/assessments", url.Values{"c": {"0.9"}, "h": {"0.9"}, "f": {"0.9"}})
	require.NoError(t, err)
	assert.Equal(t, "0", testID(doc, "days-since"))
	assert.Equal(t, []string{"affirmation"}, nudgeKinds(doc))

	clock.Advance(6 * 24 * time.Hour)
	doc, err = client.GetDoc(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, "6", testID(doc, "days-since"))
	assert.Equal(t, []string{"strong", "affirmation"}, nudgeKinds(doc))
}

func nudgeKinds(doc *goquery.Document) []string {
	var kinds []string
	doc.Find("[data-testid='nudge']").Each(func(_ int, s *goquery.Selection) {
		kind, _ := s.Attr("data-kind")
		kinds = append(kinds, kind)
	})
	return kinds
}

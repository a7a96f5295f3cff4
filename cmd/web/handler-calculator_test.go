package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/myrjola/soverain/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newTestClient(t, testhelpers.NewClock(testToday).Now)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantScore  string
		wantLabel  string
		wantG      string
		wantA      string
	}{
		{name: "form only", query: "", wantStatus: http.StatusOK},
		{
			name:       "perfect",
			query:      "?c=1&h=1&f=1",
			wantStatus: http.StatusOK,
			wantScore:  "10",
			wantLabel:  "Aligned",
			wantG:      "1.000",
			wantA:      "1.000",
		},
		{
			name:       "mixed",
			query:      "?c=0.4&h=0.4&f=0.4",
			wantStatus: http.StatusOK,
			wantScore:  "4",
			wantLabel:  "Mixed",
			wantG:      "0.400",
			wantA:      "-0.200",
		},
		{
			name:       "zero",
			query:      "?c=0&h=1&f=1",
			wantStatus: http.StatusOK,
			wantScore:  "0",
			wantLabel:  "Not Aligned",
			wantG:      "0.000",
			wantA:      "-1.000",
		},
		{name: "out of range", query: "?c=1.01&h=1&f=1", wantStatus: http.StatusUnprocessableEntity},
		{name: "missing input", query: "?c=1&h=1", wantStatus: http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		resp, err := client.Get(ctx, "/calculator"+tt.query)
		require.NoError(t, err, tt.name)
		doc := readDoc(t, resp, tt.wantStatus)
		assert.Equal(t, tt.wantScore, testID(doc, "score"), tt.name)
		assert.Equal(t, tt.wantLabel, testID(doc, "label"), tt.name)
		assert.Equal(t, tt.wantG, testID(doc, "g"), tt.name)
		assert.Equal(t, tt.wantA, testID(doc, "a"), tt.name)
		if tt.wantStatus != http.StatusOK {
			assert.Len(t, texts(doc, "p.error"), 1, tt.name)
		}
	}
}

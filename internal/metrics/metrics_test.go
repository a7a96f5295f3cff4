package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/myrjola/soverain/internal/metrics"
	"github.com/myrjola/soverain/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()
	m := metrics.New()
	m.EntrySaved(models.EntryTypeScenario)
	m.EntrySaved(models.EntryTypeScenario)
	m.EntrySaved(models.EntryTypePathwayReflection)
	m.AlignmentComputed(models.Alignment{G: 1, A: 1, Score: 10, Label: models.LabelAligned})
	m.Rejected("out_of_range")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `soverain_entries_saved_total{type="Scenario"} 2`)
	assert.Contains(t, string(body), `soverain_entries_saved_total{type="Pathway Reflection"} 1`)
	assert.Contains(t, string(body), `soverain_alignments_computed_total{label="Aligned"} 1`)
	assert.Contains(t, string(body), `soverain_inputs_rejected_total{reason="out_of_range"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

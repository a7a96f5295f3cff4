package main

import (
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/insights"
	"github.com/myrjola/soverain/internal/models"
)

type scoreboardTemplateData struct {
	BaseTemplateData

	Board insights.Scoreboard
}

func (app *application) scoreboard(w http.ResponseWriter, r *http.Request) {
	v, err := app.loadVisitor(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	data := scoreboardTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r, v),
		Board:            insights.Scoreboard{Empty: true},
	}
	if p := v.activeProfile(); p != nil {
		data.Board = insights.BuildScoreboard(p)
	}
	app.render(w, r, http.StatusOK, "scoreboard", data)
}

type searchTemplateData struct {
	BaseTemplateData

	Keyword  string
	MinScore int
	Sort     insights.SortKey
	SortKeys []insights.SortKey
	Results  []entryRow
}

const maxMinScore = 10

// search filters the active profile's entries by the q, min and sort query parameters.
func (app *application) search(w http.ResponseWriter, r *http.Request) {
	v, err := app.loadVisitor(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	query := r.URL.Query()
	data := searchTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r, v),
		Keyword:          query.Get("q"),
		Sort:             insights.NewestFirst,
		SortKeys:         insights.SortKeys,
	}

	var sortKey insights.SortKey
	if sortKey, err = insights.ParseSortKey(query.Get("sort")); err == nil {
		data.Sort = sortKey
		data.MinScore, err = parseMinScore(query.Get("min"))
	}
	if err != nil {
		app.renderInsightsError(w, r, "search", &data.BaseTemplateData, &data, err)
		return
	}

	var results []models.Entry
	if p := v.activeProfile(); p != nil {
		results = insights.Search(p, data.Keyword, data.MinScore, data.Sort)
	}
	data.Results = newEntryRows(results)
	app.render(w, r, http.StatusOK, "search", data)
}

func parseMinScore(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	minScore, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || minScore < 0 || minScore > maxMinScore {
		return 0, errors.Wrap(models.ErrValidation, "minimum score must be 0-10", slog.String("min", raw))
	}
	return minScore, nil
}

type legacyType struct {
	Type     models.EntryType
	Selected bool
}

type legacyTemplateData struct {
	BaseTemplateData

	Types   []legacyType
	Start   string
	End     string
	Entries []entryRow
}

var legacyTypes = []models.EntryType{
	models.EntryTypeScenario,
	models.EntryTypeAssessment,
	models.EntryTypeReflection,
	models.EntryTypePathwayReflection,
}

// legacy exports the entries of the selected types within the start and end dates. Without a query the last 90 days
// of scenarios, assessments and reflections are shown.
func (app *application) legacy(w http.ResponseWriter, r *http.Request) {
	v, err := app.loadVisitor(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	query := r.URL.Query()
	start, end := insights.DefaultLegacyRange(app.now())
	selected := insights.DefaultLegacyTypes
	if query.Has("type") || query.Has("start") || query.Has("end") {
		selected = nil
		for _, t := range query["type"] {
			if !slices.Contains(legacyTypes, models.EntryType(t)) {
				err = errors.Wrap(models.ErrValidation, "unknown entry type", slog.String("type", t))
				break
			}
			selected = append(selected, models.EntryType(t))
		}
		if err == nil {
			start, err = parseDate(query.Get("start"), start)
		}
		if err == nil {
			end, err = parseDate(query.Get("end"), end)
		}
	}

	data := legacyTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r, v),
		Start:            start.Format(models.DateLayout),
		End:              end.Format(models.DateLayout),
	}
	for _, t := range legacyTypes {
		data.Types = append(data.Types, legacyType{Type: t, Selected: slices.Contains(selected, t)})
	}
	if err != nil {
		app.renderInsightsError(w, r, "legacy", &data.BaseTemplateData, &data, err)
		return
	}

	var entries []models.Entry
	if p := v.activeProfile(); p != nil {
		entries = insights.ExportLegacy(p, selected, start, end)
	}
	data.Entries = newEntryRows(entries)
	app.render(w, r, http.StatusOK, "legacy", data)
}

func parseDate(raw string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, errors.Wrap(models.ErrValidation, "parse date", slog.String("date", raw))
	}
	return t, nil
}

// renderInsightsError renders page with the message for err. data must be a pointer and base must point into it.
func (app *application) renderInsightsError(
	w http.ResponseWriter,
	r *http.Request,
	page string,
	base *BaseTemplateData,
	data any,
	err error,
) {
	status, msg, ok := userError(err)
	if !ok {
		app.serverError(w, r, err)
		return
	}
	app.metrics.Rejected(rejectionReason(err))
	base.Error = msg
	app.render(w, r, status, page, data)
}

package main

import (
	"net/http"
	"strings"

	"github.com/myrjola/soverain/internal/contexthelpers"
	"github.com/myrjola/soverain/internal/models"
)

type BaseTemplateData struct {
	CurrentPath string
	Profile     string
	Goal        string
	LastScore   string
	Flash       string
	Error       string
}

func (app *application) newBaseTemplateData(r *http.Request, v *visitor) BaseTemplateData {
	ctx := r.Context()
	data := BaseTemplateData{
		CurrentPath: contexthelpers.CurrentPath(ctx),
		Flash:       app.sessionManager.PopString(ctx, flashSessionKey),
	}
	if p := v.activeProfile(); p != nil {
		data.Profile = p.Name
		data.Goal = p.Goal
		data.LastScore = p.LastScore
	}
	return data
}

// entryRow is an entry flattened for the entries table.
type entryRow struct {
	Date   string
	Type   models.EntryType
	Title  string
	Detail string
	Score  string
	Label  models.Label
}

func newEntryRows(entries []models.Entry) []entryRow {
	rows := make([]entryRow, 0, len(entries))
	for _, e := range entries {
		row := entryRow{
			Date:  e.SavedOn().Format(models.DateLayout),
			Type:  e.EntryType(),
			Score: models.Placeholder,
		}
		switch e := e.(type) {
		case *models.ScenarioEntry:
			row.Title = e.Ref
			row.Detail = joinNonEmpty(e.Figure, e.Situation)
			row.Label = e.Alignment.Label
		case *models.AssessmentEntry:
			row.Title = e.Type
			row.Label = e.Alignment.Label
		case *models.ReflectionEntry:
			row.Title = e.Text
			if e.Pathway != "" {
				row.Title = joinNonEmpty(e.Pathway+" pathway", strings.TrimSpace(e.Book+" "+e.Verse))
			}
			row.Detail = joinNonEmpty(e.Tags, string(linkDetail(e.LinkedTo)))
			row.Label = e.Label
		}
		if score, _, ok := e.Scored(); ok {
			row.Score = itoa(score)
		}
		rows = append(rows, row)
	}
	return rows
}

func linkDetail(link models.ReflectionLink) models.ReflectionLink {
	if link == models.LinkNone {
		return ""
	}
	return "linked to " + link
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " · ")
}

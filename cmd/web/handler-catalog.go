package main

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/myrjola/soverain/internal/catalog"
	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/journal"
	"github.com/myrjola/soverain/internal/models"
)

type catalogRow struct {
	Index int
	Entry models.CatalogEntry
}

type catalogTemplateData struct {
	BaseTemplateData

	Entries          []catalogRow
	Selected         *models.CatalogEntry
	SelectedIndex    int
	ScenarioDefaults models.Inputs
	CatalogDefaults  models.Inputs
	PathwayNames     []string
	Pathway          *models.Pathway
	Step             *models.PathwayStep
	StepIndex        int
}

// newCatalogTemplateData builds the catalog page. The entry, pathway and step query parameters select what the
// scoring forms are prefilled with.
func (app *application) newCatalogTemplateData(r *http.Request, v *visitor, query url.Values) (catalogTemplateData, error) {
	neutral := models.Inputs{C: 0.5, H: 0.5, F: 0.5} //nolint:mnd // neutral starting point
	data := catalogTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r, v),
		ScenarioDefaults: neutral,
		CatalogDefaults:  neutral,
		PathwayNames:     v.catalog.PathwayNames(),
	}
	for i, entry := range v.catalog.List() {
		data.Entries = append(data.Entries, catalogRow{Index: i, Entry: entry})
	}

	if raw := query.Get("entry"); raw != "" {
		i, err := strconv.Atoi(raw)
		if err != nil {
			return data, errors.Wrap(catalog.ErrEntryNotFound, "parse entry index", slog.String("entry", raw))
		}
		entry, err := v.catalog.Entry(i)
		if err != nil {
			return data, err
		}
		data.Selected, data.SelectedIndex, data.ScenarioDefaults = &entry, i, entry.Defaults
	}

	if name := query.Get("pathway"); name != "" {
		pathway, err := v.catalog.Pathway(name)
		if err != nil {
			return data, err
		}
		data.Pathway = &pathway
		i, err := strconv.Atoi(query.Get("step"))
		if err != nil {
			i = 0
		}
		step, err := v.catalog.Step(name, i)
		if err != nil {
			return data, err
		}
		data.Step, data.StepIndex = &step, i
	}
	return data, nil
}

func (app *application) catalogPage(w http.ResponseWriter, r *http.Request) {
	v, err := app.loadVisitor(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	data, err := app.newCatalogTemplateData(r, v, r.URL.Query())
	if err != nil {
		app.renderCatalogError(w, r, v, err)
		return
	}
	app.render(w, r, http.StatusOK, "catalog", data)
}

// renderCatalogError re-renders the catalog page with a message when err is the visitor's fault.
func (app *application) renderCatalogError(w http.ResponseWriter, r *http.Request, v *visitor, err error) {
	status, msg, ok := userError(err)
	if !ok {
		app.serverError(w, r, err)
		return
	}
	app.metrics.Rejected(rejectionReason(err))
	data, dataErr := app.newCatalogTemplateData(r, v, url.Values{})
	if dataErr != nil {
		app.serverError(w, r, errors.Wrap(dataErr, "build catalog page"))
		return
	}
	data.Error = msg
	app.render(w, r, status, "catalog", data)
}

// addCatalogEntry appends an entry to the visitor's catalog.
func (app *application) addCatalogEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v, err := app.loadVisitor(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if err = r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	form := r.PostForm
	var defaults models.Inputs
	if defaults, err = parseInputs(form.Get); err != nil {
		app.renderCatalogError(w, r, v, err)
		return
	}
	entry := models.CatalogEntry{
		Book:      strings.TrimSpace(form.Get("book")),
		Verse:     strings.TrimSpace(form.Get("verse")),
		Figure:    form.Get("figure"),
		Situation: form.Get("situation"),
		Ref:       form.Get("ref"),
		Defaults:  defaults,
	}
	if err = v.catalog.Add(entry); err != nil {
		app.renderCatalogError(w, r, v, err)
		return
	}
	v.additions = append(v.additions, entry)
	if err = app.saveAdditions(ctx, v); err != nil {
		app.serverError(w, r, errors.Wrap(err, "save catalog additions"))
		return
	}
	app.redirectWithFlash(w, r, "/catalog", "Added "+entry.Book+" "+entry.Verse+" to the catalog.")
}

// saveScenario scores a catalog entry, selected by its index, or a custom scenario and saves it.
func (app *application) saveScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v, err := app.loadVisitor(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if err = r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	form := r.PostForm
	draft := journal.ScenarioDraft{
		Book:      form.Get("book"),
		Verse:     form.Get("verse"),
		Figure:    form.Get("figure"),
		Situation: form.Get("situation"),
	}
	if raw := form.Get("entry"); raw != "" {
		var (
			i     int
			entry models.CatalogEntry
		)
		if i, err = strconv.Atoi(raw); err != nil {
			app.renderCatalogError(w, r, v, errors.Wrap(catalog.ErrEntryNotFound, "parse entry index"))
			return
		}
		if entry, err = v.catalog.Entry(i); err != nil {
			app.renderCatalogError(w, r, v, err)
			return
		}
		draft = journal.ScenarioDraft{
			Book:      entry.Book,
			Verse:     entry.Verse,
			Figure:    entry.Figure,
			Situation: entry.Situation,
			Ref:       entry.Ref,
		}
	}
	if draft.Inputs, err = parseInputs(form.Get); err != nil {
		app.renderCatalogError(w, r, v, err)
		return
	}
	var entry models.ScenarioEntry
	if entry, err = v.journal.RecordScenario(v.profile, draft, app.now()); err != nil {
		app.renderCatalogError(w, r, v, err)
		return
	}
	if err = app.saveJournal(ctx, v); err != nil {
		app.serverError(w, r, errors.Wrap(err, "save journal"))
		return
	}
	app.metrics.AlignmentComputed(entry.Alignment)
	app.metrics.EntrySaved(entry.EntryType())
	app.redirectWithFlash(w, r, "/catalog",
		"Saved "+entry.Ref+" with score "+itoa(entry.Alignment.Score)+" ("+string(entry.Alignment.Label)+").")
}

// savePathwayReflection scores a pathway step and saves it as a pathway reflection.
func (app *application) savePathwayReflection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v, err := app.loadVisitor(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if err = r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	form := r.PostForm
	name := form.Get("pathway")
	i, err := strconv.Atoi(form.Get("step"))
	if err != nil {
		app.renderCatalogError(w, r, v, errors.Wrap(catalog.ErrPathwayNotFound, "parse step index"))
		return
	}
	var step models.PathwayStep
	if step, err = v.catalog.Step(name, i); err != nil {
		app.renderCatalogError(w, r, v, err)
		return
	}
	var in models.Inputs
	if in, err = parseInputs(form.Get); err != nil {
		app.renderCatalogError(w, r, v, err)
		return
	}
	var entry models.ReflectionEntry
	if entry, err = v.journal.RecordPathwayReflection(v.profile, name, step, in, app.now()); err != nil {
		app.renderCatalogError(w, r, v, err)
		return
	}
	if err = app.saveJournal(ctx, v); err != nil {
		app.serverError(w, r, errors.Wrap(err, "save journal"))
		return
	}
	if score, g, ok := entry.Scored(); ok {
		app.metrics.AlignmentComputed(models.Alignment{G: g, Score: score, Label: entry.Label})
	}
	app.metrics.EntrySaved(entry.EntryType())
	app.redirectWithFlash(w, r, "/catalog?pathway="+url.QueryEscape(name)+"&step="+itoa(i)+"#pathways",
		"Pathway reflection saved.")
}

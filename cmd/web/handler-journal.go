package main

import (
	"net/http"

	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/models"
)

// saveAssessment scores and saves a life assessment.
func (app *application) saveAssessment(w http.ResponseWriter, r *http.Request) {
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
	var in models.Inputs
	if in, err = parseInputs(r.PostForm.Get); err != nil {
		app.renderHomeError(w, r, v, err)
		return
	}
	var entry models.AssessmentEntry
	if entry, err = v.journal.RecordAssessment(v.profile, models.AssessmentLife, in, app.now()); err != nil {
		app.renderHomeError(w, r, v, err)
		return
	}
	if err = app.saveJournal(ctx, v); err != nil {
		app.serverError(w, r, errors.Wrap(err, "save journal"))
		return
	}
	app.metrics.AlignmentComputed(entry.Alignment)
	app.metrics.EntrySaved(entry.EntryType())
	app.redirectWithFlash(w, r, "/", "Life assessment saved with score "+itoa(entry.Alignment.Score)+".")
}

// saveGreatestCommands scores love for God and neighbor with full faithfulness and saves it as an assessment.
func (app *application) saveGreatestCommands(w http.ResponseWriter, r *http.Request) {
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
	var loveGod, loveNeighbor float64
	if loveGod, err = parseUnit(r.PostForm.Get("love_god")); err != nil {
		app.renderHomeError(w, r, v, err)
		return
	}
	if loveNeighbor, err = parseUnit(r.PostForm.Get("love_neighbor")); err != nil {
		app.renderHomeError(w, r, v, err)
		return
	}
	var entry models.AssessmentEntry
	if entry, err = v.journal.RecordGreatestCommands(v.profile, loveGod, loveNeighbor, app.now()); err != nil {
		app.renderHomeError(w, r, v, err)
		return
	}
	if err = app.saveJournal(ctx, v); err != nil {
		app.serverError(w, r, errors.Wrap(err, "save journal"))
		return
	}
	app.metrics.AlignmentComputed(entry.Alignment)
	app.metrics.EntrySaved(entry.EntryType())
	app.redirectWithFlash(w, r, "/", "Greatest Commands reflection saved with score "+itoa(entry.Alignment.Score)+".")
}

// saveReflection saves a journal reflection, optionally linked to the last scenario or assessment.
func (app *application) saveReflection(w http.ResponseWriter, r *http.Request) {
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
	link := models.ReflectionLink(r.PostForm.Get("link"))
	switch link {
	case "", models.LinkNone, models.LinkLastScenario, models.LinkLastAssessment:
	default:
		app.renderHomeError(w, r, v, errors.Wrap(models.ErrValidation, "unknown reflection link"))
		return
	}
	var entry models.ReflectionEntry
	if entry, err = v.journal.RecordReflection(
		v.profile, r.PostForm.Get("text"), r.PostForm.Get("tags"), link, app.now(),
	); err != nil {
		app.renderHomeError(w, r, v, err)
		return
	}
	if err = app.saveJournal(ctx, v); err != nil {
		app.serverError(w, r, errors.Wrap(err, "save journal"))
		return
	}
	app.metrics.EntrySaved(entry.EntryType())
	app.redirectWithFlash(w, r, "/", "Reflection saved.")
}

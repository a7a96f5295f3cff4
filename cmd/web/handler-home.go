package main

import (
	"net/http"
	"strconv"

	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/insights"
	"github.com/myrjola/soverain/internal/models"
)

const recentReflections = 5

type homeTemplateData struct {
	BaseTemplateData

	Profiles           []string
	Summary            insights.Summary
	Alignment          models.Alignment
	HasAlignment       bool
	DaysSinceLastEntry string
	Nudges             []insights.Nudge
	RecentReflections  []entryRow
	AssessmentDefaults models.Inputs
	Links              []models.ReflectionLink
}

func (app *application) newHomeTemplateData(r *http.Request, v *visitor) homeTemplateData {
	data := homeTemplateData{
		BaseTemplateData:   app.newBaseTemplateData(r, v),
		Profiles:           v.journal.Names(),
		AssessmentDefaults: models.Inputs{C: 0.5, H: 0.5, F: 0.5}, //nolint:mnd // neutral starting point
		Links:              []models.ReflectionLink{models.LinkNone, models.LinkLastScenario, models.LinkLastAssessment},
	}
	p := v.activeProfile()
	if p == nil {
		return data
	}
	data.Summary = insights.Summarize(p)
	data.Alignment, data.HasAlignment = data.Summary.ProfileAlignment()
	staleness := insights.MeasureStaleness(p, app.now())
	if staleness.DaysSinceLastEntry != nil {
		data.DaysSinceLastEntry = strconv.Itoa(*staleness.DaysSinceLastEntry)
	}
	data.Nudges = insights.Nudges(staleness)

	var reflections []models.Entry
	for i := len(p.Reflections) - 1; i >= 0 && len(reflections) < recentReflections; i-- {
		reflections = append(reflections, &p.Reflections[i])
	}
	data.RecentReflections = newEntryRows(reflections)
	return data
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	v, err := app.loadVisitor(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.render(w, r, http.StatusOK, "home", app.newHomeTemplateData(r, v))
}

// renderHomeError re-renders the dashboard with a message when err is the visitor's fault.
func (app *application) renderHomeError(w http.ResponseWriter, r *http.Request, v *visitor, err error) {
	status, msg, ok := userError(err)
	if !ok {
		app.serverError(w, r, err)
		return
	}
	app.metrics.Rejected(rejectionReason(err))
	data := app.newHomeTemplateData(r, v)
	data.Error = msg
	app.render(w, r, status, "home", data)
}

// selectProfile creates the named profile if needed, makes it the active one and optionally updates its goal.
func (app *application) selectProfile(w http.ResponseWriter, r *http.Request) {
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
	var p *models.Profile
	if p, err = v.journal.GetOrCreate(r.PostForm.Get("name")); err != nil {
		app.renderHomeError(w, r, v, err)
		return
	}
	if goal := r.PostForm.Get("goal"); goal != "" {
		if err = v.journal.UpdateGoal(p.Name, goal); err != nil {
			app.renderHomeError(w, r, v, err)
			return
		}
	}
	if err = app.saveJournal(ctx, v); err != nil {
		app.serverError(w, r, errors.Wrap(err, "save journal"))
		return
	}
	app.sessionManager.Put(ctx, profileSessionKey, p.Name)
	app.redirectWithFlash(w, r, "/", "Profile updated.")
}

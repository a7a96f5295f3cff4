package main

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/myrjola/soverain/internal/alignment"
	"github.com/myrjola/soverain/internal/catalog"
	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/journal"
	"github.com/myrjola/soverain/internal/models"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int) {
	app.logger.LogAttrs(r.Context(), slog.LevelDebug, http.StatusText(status), slog.Any("formdata", r.Form))
	http.Error(w, http.StatusText(status), status)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.clientError(w, r, http.StatusNotFound)
}

// userError classifies err into a status and a message fit for the visitor. ok is false for unexpected errors, which
// must go through serverError instead.
func userError(err error) (int, string, bool) {
	switch {
	case errors.Is(err, alignment.ErrOutOfRange):
		return http.StatusUnprocessableEntity, "Christlikeness, Heart and Faithfulness must each be between 0 and 1.", true
	case errors.Is(err, models.ErrValidation):
		return http.StatusUnprocessableEntity, "Please fill in the required fields.", true
	case errors.Is(err, journal.ErrProfileNotFound):
		return http.StatusNotFound, "Profile not found. Please create a profile first.", true
	case errors.Is(err, catalog.ErrEntryNotFound), errors.Is(err, catalog.ErrPathwayNotFound):
		return http.StatusNotFound, "That catalog entry or pathway step does not exist.", true
	}
	return 0, "", false
}

// rejectionReason labels a user error for metrics.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, alignment.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, models.ErrValidation):
		return "validation"
	case errors.Is(err, journal.ErrProfileNotFound):
		return "profile_not_found"
	}
	return "not_found"
}

// parseUnit parses a form value expected to lie in [0, 1]. The range itself is checked by the scoring engine.
func parseUnit(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.Wrap(alignment.ErrOutOfRange, "parse input", slog.String("value", s))
	}
	return v, nil
}

// parseInputs reads the c, h and f values of a form or query.
func parseInputs(get func(string) string) (models.Inputs, error) {
	var (
		in  models.Inputs
		err error
	)
	if in.C, err = parseUnit(get("c")); err != nil {
		return in, err
	}
	if in.H, err = parseUnit(get("h")); err != nil {
		return in, err
	}
	if in.F, err = parseUnit(get("f")); err != nil {
		return in, err
	}
	return in, nil
}

// redirectWithFlash completes a successful form post with the post/redirect/get pattern.
func (app *application) redirectWithFlash(w http.ResponseWriter, r *http.Request, target, flash string) {
	app.sessionManager.Put(r.Context(), flashSessionKey, flash)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

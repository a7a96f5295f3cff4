package main

import (
	"net/http"

	"github.com/myrjola/soverain/internal/alignment"
	"github.com/myrjola/soverain/internal/models"
)

type calculatorTemplateData struct {
	BaseTemplateData

	Inputs    models.Inputs
	Result    models.Alignment
	HasResult bool
}

// calculator scores the c, h and f query parameters without saving anything.
func (app *application) calculator(w http.ResponseWriter, r *http.Request) {
	v, err := app.loadVisitor(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	data := calculatorTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r, v),
		Inputs:           models.Inputs{C: 0.5, H: 0.5, F: 0.5}, //nolint:mnd // neutral starting point
	}
	query := r.URL.Query()
	if !query.Has("c") && !query.Has("h") && !query.Has("f") {
		app.render(w, r, http.StatusOK, "calculator", data)
		return
	}

	var in models.Inputs
	if in, err = parseInputs(query.Get); err == nil {
		data.Inputs = in
		data.Result, err = alignment.Compute(in)
	}
	if err != nil {
		status, msg, ok := userError(err)
		if !ok {
			app.serverError(w, r, err)
			return
		}
		app.metrics.Rejected(rejectionReason(err))
		data.Error = msg
		app.render(w, r, status, "calculator", data)
		return
	}
	data.HasResult = true
	app.metrics.AlignmentComputed(data.Result)
	app.render(w, r, http.StatusOK, "calculator", data)
}

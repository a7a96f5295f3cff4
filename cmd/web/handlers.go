package main

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/myrjola/soverain/internal/contexthelpers"
	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/models"
	"github.com/myrjola/soverain/ui"
)

var templateFuncs = template.FuncMap{
	// nonce and csrf are placeholders. They are overridden per request in render.
	"nonce": func() template.HTMLAttr {
		panic("not implemented")
	},
	"csrf": func() template.HTML {
		panic("not implemented")
	},
	"fixed": func(v float64, decimals int) string {
		return strconv.FormatFloat(v, 'f', decimals, 64)
	},
	"optional": func(v *float64, decimals int) string {
		if v == nil {
			return models.Placeholder
		}
		return strconv.FormatFloat(*v, 'f', decimals, 64)
	},
	"percent": func(g float64) int {
		return int(math.Round(math.Max(0, math.Min(1, g)) * 100)) //nolint:mnd // percent
	},
	"date": func(t time.Time) string {
		return t.Format(models.DateLayout)
	},
	"labelClass": func(l models.Label) string {
		return strings.ReplaceAll(string(l), " ", "-")
	},
}

// pageTemplate returns a template for the given page name.
//
// pageName corresponds to directory inside ui/templates/pages folder. It has to include a template named "page".
func (app *application) pageTemplate(pageName string) (*template.Template, error) {
	t, err := template.New(pageName).Funcs(templateFuncs).ParseFS(ui.Files,
		"templates/base.gohtml",
		fmt.Sprintf("templates/pages/%s/*.gohtml", pageName),
	)
	if err != nil {
		return nil, errors.Wrap(err, "parse templates", slog.String("page", pageName))
	}
	return t, nil
}

func (app *application) render(w http.ResponseWriter, r *http.Request, status int, file string, data any) {
	var (
		err error
		t   *template.Template
	)

	if t, err = app.pageTemplate(file); err != nil {
		app.serverError(w, r, errors.Wrap(err, "parse template", slog.String("template", file)))
		return
	}

	buf := new(bytes.Buffer)
	ctx := r.Context()
	nonce := fmt.Sprintf("nonce=%q", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf("<input type=\"hidden\" name=\"csrf_token\" value=\"%s\"/>", contexthelpers.CSRFToken(ctx))
	t.Funcs(template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // we trust the nonce since it's not provided by user.
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec // we trust the csrf since it's not provided by user.
		},
	})
	if err = t.ExecuteTemplate(buf, "base", data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template", slog.String("template", file)))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	_, _ = buf.WriteTo(w)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

package main

import (
	"io/fs"
	"net/http"

	"github.com/justinas/alice"
	"github.com/myrjola/soverain/ui"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err) // The embedded directory is known at compile time.
	}
	mux.Handle("GET /static/", cacheForeverHeaders(http.StripPrefix("/static", http.FileServerFS(static))))

	session := alice.New(app.sessionManager.LoadAndSave, noSurf, commonContext, app.visitorContext)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("POST /profile", session.ThenFunc(app.selectProfile))
	mux.Handle("GET /catalog", session.ThenFunc(app.catalogPage))
	mux.Handle("POST /catalog", session.ThenFunc(app.addCatalogEntry))
	mux.Handle("POST /scenarios", session.ThenFunc(app.saveScenario))
	mux.Handle("POST /assessments", session.ThenFunc(app.saveAssessment))
	mux.Handle("POST /greatest-commands", session.ThenFunc(app.saveGreatestCommands))
	mux.Handle("POST /reflections", session.ThenFunc(app.saveReflection))
	mux.Handle("POST /pathways/reflections", session.ThenFunc(app.savePathwayReflection))
	mux.Handle("GET /calculator", session.ThenFunc(app.calculator))
	mux.Handle("GET /scoreboard", session.ThenFunc(app.scoreboard))
	mux.Handle("GET /search", session.ThenFunc(app.search))
	mux.Handle("GET /legacy", session.ThenFunc(app.legacy))

	mux.HandleFunc("GET /api/healthy", app.healthy)
	mux.Handle("GET /metrics", app.metrics.Handler())

	mux.Handle("/", session.ThenFunc(app.notFound))

	chain := alice.New(app.recoverPanic, app.logRequest, secureHeaders)
	return chain.Then(timeoutHandler(mux, defaultTimeout))
}

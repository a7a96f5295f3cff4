package pprofserver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/myrjola/soverain/internal/pprofserver"
	"github.com/stretchr/testify/assert"
)

func TestLoopbackAddr(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "[::1]:6060", pprofserver.LoopbackAddr(":6060"))
	assert.Equal(t, "[::1]:6060", pprofserver.LoopbackAddr("0.0.0.0:6060"))
	assert.Equal(t, "[::1]:6060", pprofserver.LoopbackAddr("6060"))
}

func TestHandle(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	pprofserver.Handle(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

package contexthelpers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/myrjola/soverain/internal/contexthelpers"
	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := r.Context()
	assert.Empty(t, contexthelpers.CurrentPath(ctx))
	assert.Empty(t, contexthelpers.CSRFToken(ctx))
	assert.Empty(t, contexthelpers.CSPNonce(ctx))
	assert.Empty(t, contexthelpers.ActiveProfile(ctx))

	r = contexthelpers.SetCurrentPath(r, "/search")
	r = contexthelpers.SetCSRFToken(r, "token")
	r = contexthelpers.SetCSPNonce(r, "nonce")
	r = contexthelpers.SetActiveProfile(r, "Ruth")
	ctx = r.Context()
	assert.Equal(t, "/search", contexthelpers.CurrentPath(ctx))
	assert.Equal(t, "token", contexthelpers.CSRFToken(ctx))
	assert.Equal(t, "nonce", contexthelpers.CSPNonce(ctx))
	assert.Equal(t, "Ruth", contexthelpers.ActiveProfile(ctx))
}

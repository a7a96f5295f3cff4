package contexthelpers

type contextKey string

const (
	currentPathContextKey   = contextKey("currentPath")
	csrfTokenContextKey     = contextKey("csrfToken")
	cspNonceContextKey      = contextKey("cspNonce")
	activeProfileContextKey = contextKey("activeProfile")
)

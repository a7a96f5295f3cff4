package main

import (
	"net/http"
	"time"
)

const timeoutBody = `<!doctype html>
<html lang="en">
<head><title>Timeout · Soverain</title></head>
<body>
<h1>Timeout</h1>
<p>Your journal took too long to load. Nothing was lost.</p>
<p><a href="/">Return to the dashboard</a></p>
</body>
</html>
`

// timeoutHandler responds with 503 Service Unavailable when h does not finish in time.
//
// The deadline is a little shorter than the server's write timeout so that the visitor still receives the response.
func timeoutHandler(h http.Handler, serverTimeout time.Duration) http.Handler {
	return http.TimeoutHandler(h, serverTimeout-500*time.Millisecond, timeoutBody) //nolint:mnd // 500ms margin
}

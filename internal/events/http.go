package events

import (
	"net/http"
	"time"
)

// HTTPStart is emitted when a request enters the router. The published
// context carries the request ID.
type HTTPStart struct {
	Request *http.Request
}

// HTTPFinish is emitted after the handler returns. Route is the matched
// route pattern, empty when no route matched.
type HTTPFinish struct {
	Request  *http.Request
	Route    string
	Status   int
	Duration time.Duration
}

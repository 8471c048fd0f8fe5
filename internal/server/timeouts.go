package server

import "time"

const (
	readTimeout = 10 * time.Second
	// POST /gifs answers only after the production finishes.
	writeTimeout = 90 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout covers one in-progress production; a var so tests can shorten it.
var shutdownTimeout = 60 * time.Second

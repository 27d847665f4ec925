package web

import (
	_ "embed"
	"net/http"
)

//go:embed playground.html
var playgroundHTML []byte

// ServePlayground serves the embedded page for trying out /owoify in a browser
func ServePlayground(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(playgroundHTML)
}

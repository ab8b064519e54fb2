package web

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"text/template"
	"time"
)

//go:embed static/*
var staticFiles embed.FS

// ScriptName is the page-side extractor's file name.
const ScriptName = "unread.user.js"

var scriptTmpl = template.Must(template.ParseFS(staticFiles, "static/"+ScriptName))

// Handler returns an HTTP handler that serves the embedded static files.
// The status page is served at the root path.
func Handler() http.Handler {
	fsys, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	return http.FileServer(http.FS(fsys))
}

// UserScript renders the page-side extractor for the given bridge URL and
// poll interval.
func UserScript(bridgeURL string, interval time.Duration) ([]byte, error) {
	var buf bytes.Buffer
	err := scriptTmpl.Execute(&buf, struct {
		BridgeURL  string
		IntervalMS int64
	}{bridgeURL, interval.Milliseconds()})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", ScriptName, err)
	}
	return buf.Bytes(), nil
}

// ScriptHandler serves the rendered userscript.
func ScriptHandler(bridgeURL string, interval time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := UserScript(bridgeURL, interval)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.Write(body)
	}
}

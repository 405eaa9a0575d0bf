package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/fitform/fitform/internal/errors"
)

// GuidePageData is the template data for the guide page.
type GuidePageData struct {
	Title        string
	Version      string
	RenderedHTML template.HTML
}

// Renderer manages template parsing and rendering for the guide page.
type Renderer struct {
	guide   *template.Template
	guideMD string
	version string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version, guideMD string) *Renderer {
	return &Renderer{
		guide:   template.Must(template.New("guide").ParseFS(templateFS, "guide.html")),
		guideMD: guideMD,
		version: version,
	}
}

// renderGuide renders the markdown guide inside the page layout.
func (r *Renderer) renderGuide(w http.ResponseWriter) {
	data := GuidePageData{
		Title:        "fitform studio",
		Version:      r.version,
		RenderedHTML: renderMarkdown(r.guideMD),
	}

	var buf bytes.Buffer
	if err := r.guide.ExecuteTemplate(&buf, "guide.html", data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// renderMarkdown converts markdown text to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderError writes an error as the JSON error envelope, mapping the
// studio error code to its HTTP status.
func renderError(w http.ResponseWriter, err error) {
	var sErr *errors.StudioError
	if !stderrors.As(err, &sErr) {
		sErr = errors.NewInternal(err)
	}

	renderJSON(w, sErr.Status, map[string]any{
		"error": map[string]any{
			"code":    string(sErr.Code),
			"message": sErr.Message,
			"status":  sErr.Status,
		},
	})
}

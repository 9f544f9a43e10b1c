package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"lifeos/domain/insight"
	"lifeos/internal/errors"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"pct": func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
		"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
		"score": func(v float64) string { return fmt.Sprintf("%.1f/3", v) },
		"join":  strings.Join,
		"date": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("Jan 2, 2006")
		},
		"priorityClass": func(p insight.Priority) string {
			return "priority-" + string(p)
		},
	}
}

// renderTemplate renders to a buffer first so a failing template never
// sends a partial page
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		a.logger.Error("template %s: %v", templateName, err)
		http.Error(w, "Template rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Warn("writing %s: %v", templateName, err)
	}
}

// renderError shows err with the status its code maps to
func (a *App) renderError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("page failed: %v", err)
	}

	var buf bytes.Buffer
	if execErr := a.templates.ExecuteTemplate(&buf, "error.html", map[string]interface{}{
		"Status":  status,
		"Title":   http.StatusText(status),
		"Message": err.Error(),
	}); execErr != nil {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

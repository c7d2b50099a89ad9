package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/nao1215/hoyoauth/internal/model"
)

// JSONWriter renders reports as one JSON document.
// Output is compact unless WithPrettyPrint is given.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter.
func NewJSONWriter(output io.Writer, opts ...Option) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output, opts)}
}

// JSONReport is the document JSONWriter emits.
type JSONReport struct {
	Version     string       `json:"version"`
	GeneratedAt time.Time    `json:"generated_at"`
	Summary     Summary      `json:"summary"`
	Results     []JSONResult `json:"results"`
}

// JSONResult is one login report with its session rendered.
type JSONResult struct {
	*model.LoginReport

	Session      map[string]string `json:"session,omitempty"`
	CookieHeader string            `json:"cookie_header,omitempty"`
}

// NewJSONReport builds the document for reports.
func (w *JSONWriter) NewJSONReport(reports []*model.LoginReport) *JSONReport {
	results := make([]JSONResult, len(reports))
	for i, r := range reports {
		results[i] = JSONResult{LoginReport: r, Session: w.sessionValues(r)}
		if w.showTokens && r.Session != nil {
			results[i].CookieHeader = model.CookieHeader(r.Session)
		}
	}
	return &JSONReport{
		Version:     w.version,
		GeneratedAt: time.Now().UTC(),
		Summary:     NewSummary(reports),
		Results:     results,
	}
}

// Write implements Writer.
func (w *JSONWriter) Write(reports []*model.LoginReport) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.pretty {
		data, err = json.MarshalIndent(w.NewJSONReport(reports), "", "  ")
	} else {
		data, err = json.Marshal(w.NewJSONReport(reports))
	}
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	return w.output.Write(data)
}

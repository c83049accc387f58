package notify

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"text/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// Field is one labelled line of a summary.
type Field struct {
	Label string
	Value string
}

// Summary is the human-readable digest of a submission sent to the business.
type Summary struct {
	Title       string
	ReferenceID string
	SubmittedAt time.Time
	Fields      []Field
	Notes       string
}

// Add appends a field; empty values are skipped.
func (s *Summary) Add(label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	s.Fields = append(s.Fields, Field{Label: label, Value: value})
}

const summaryTemplate = `{{.Title}}
Reference: {{.ReferenceID}}
Submitted: {{.Submitted}}
{{range .Fields}}
{{.Label}}: {{.Value}}{{end}}
{{- if .Notes}}

Notes:
{{.Notes}}{{end}}
`

var (
	summaryTmpl = template.Must(template.New("summary").Option("missingkey=error").Parse(summaryTemplate))
	strict      = bluemonday.StrictPolicy()
)

// Sanitize strips markup from user-entered text. The result is plain text, so
// the entities bluemonday escapes are decoded again.
func Sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Render produces the plain-text body for a summary.
func (s Summary) Render() (string, error) {
	data := struct {
		Title       string
		ReferenceID string
		Submitted   string
		Fields      []Field
		Notes       string
	}{
		Title:       s.Title,
		ReferenceID: s.ReferenceID,
		Submitted:   s.SubmittedAt.Format(time.RFC1123),
		Notes:       Sanitize(s.Notes),
	}
	for _, f := range s.Fields {
		data.Fields = append(data.Fields, Field{Label: f.Label, Value: Sanitize(f.Value)})
	}

	var buf bytes.Buffer
	if err := summaryTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("notify: render summary: %w", err)
	}
	return buf.String(), nil
}

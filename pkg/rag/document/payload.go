package document

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// PayloadKind tags how a project/task payload was interpreted.
type PayloadKind string

const (
	KindStructured   PayloadKind = "structured"
	KindUnstructured PayloadKind = "unstructured"
)

// Payload is the tagged variant replacing the ad hoc "JSON, list, dict or
// plain string" inspection of the original project/task service. A payload is
// parsed exactly once: if the raw text is a JSON object or array of records
// it becomes Structured, anything else is Unstructured text.
type Payload struct {
	Kind    PayloadKind
	Records []Record
	Text    string
}

// Record is one structured item (a project or a task row).
type Record struct {
	Fields map[string]any
}

// Parse performs the single well-defined parse attempt.
func Parse(raw string) Payload {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Payload{Kind: KindUnstructured, Text: ""}
	}

	var list []map[string]any
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
		records := make([]Record, 0, len(list))
		for _, item := range list {
			records = append(records, Record{Fields: item})
		}
		return Payload{Kind: KindStructured, Records: records}
	}

	var single map[string]any
	if err := json.Unmarshal([]byte(trimmed), &single); err == nil {
		return Payload{Kind: KindStructured, Records: []Record{{Fields: single}}}
	}

	return Payload{Kind: KindUnstructured, Text: trimmed}
}

// Render turns the payload into document texts ready for indexing. label is
// the Portuguese collection name ("Projetos", "Tarefas"); each structured
// record becomes one document, unstructured text becomes a single document.
func (p Payload) Render(label string) []string {
	switch p.Kind {
	case KindStructured:
		docs := make([]string, 0, len(p.Records))
		for i, rec := range p.Records {
			var b strings.Builder
			fmt.Fprintf(&b, "%s #%d:\n", label, i+1)

			keys := make([]string, 0, len(rec.Fields))
			for k := range rec.Fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(&b, "%s: %v\n", k, rec.Fields[k])
			}
			docs = append(docs, b.String())
		}
		return docs
	default:
		if p.Text == "" {
			return nil
		}
		return []string{fmt.Sprintf("%s (texto não estruturado):\n%s", label, p.Text)}
	}
}

package form

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Field is one labeled input of the negotiation form.
type Field struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Help  string `json:"help"`
}

// Fields lists the form inputs in display order.
var Fields = []Field{
	{"negotiation_subject", "Negotiation Subject", "What is the main topic or subject of the negotiation?"},
	{"project_value", "Project Value", "What is the estimated financial value of the project?"},
	{"company_profile", "Company's Profile & Industry", "Brief description of your company and industry context"},
	{"scope_description", "Scope Description", "Detailed description of what is being negotiated"},
	{"targets", "Targets to be Achieved", "What specific goals do you want to achieve?"},
	{"vendors", "Vendors & Suppliers to be Invited", "List of potential suppliers/vendors to negotiate with"},
	{"interests", "Client's Interests & Vendor's Interests", "What are the key interests of both parties?"},
	{"advantages", "Client's Negotiation Advantages & Vendors' Negotiation Advantages", "What advantages does each party bring to the negotiation?"},
	{"disadvantages", "Client's Negotiation Disadvantages & Vendors' Negotiation Disadvantages", "What are the weaknesses or challenges for each party?"},
}

// Keys returns the field keys in display order.
func Keys() []string {
	keys := make([]string, len(Fields))
	for i, f := range Fields {
		keys[i] = f.Key
	}
	return keys
}

// Snapshot maps field keys to the values used for one generation.
type Snapshot map[string]string

// ErrIncompleteInput is matched by every *IncompleteError.
var ErrIncompleteInput = errors.New("incomplete input")

// IncompleteError lists the required fields that were empty.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("please fill in all fields: missing %s", strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Is(target error) bool { return target == ErrIncompleteInput }

// Validate checks that every field has a non-blank value and returns a
// snapshot holding exactly the form fields. Unknown keys are ignored.
func Validate(values map[string]string) (Snapshot, error) {
	snap := make(Snapshot, len(Fields))
	var missing []string
	for _, f := range Fields {
		v := values[f.Key]
		if strings.TrimSpace(v) == "" {
			missing = append(missing, f.Key)
			continue
		}
		snap[f.Key] = v
	}
	if len(missing) > 0 {
		return nil, &IncompleteError{Missing: missing}
	}
	return snap, nil
}

// Clone returns an independent copy.
func (s Snapshot) Clone() Snapshot {
	return maps.Clone(s)
}

// Label turns a field key into a display label, e.g. "project_value" into
// "Project Value".
func Label(key string) string {
	// Casers carry state, so each call gets its own.
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// Format renders the snapshot as "Label: value" paragraphs in field order.
func (s Snapshot) Format() string {
	parts := make([]string, 0, len(s))
	for _, f := range Fields {
		v, ok := s[f.Key]
		if !ok {
			continue
		}
		parts = append(parts, Label(f.Key)+": "+v)
	}
	return strings.Join(parts, "\n\n")
}

package domain

import (
	"encoding/json"
	"strings"
)

// Langues records which languages a collaborator speaks.
type Langues struct {
	FR bool `json:"FR"`
	IT bool `json:"IT"`
	EN bool `json:"EN"`
	DE bool `json:"DE"`
	ES bool `json:"ES"`
}

// Spoken returns the language codes set to true, in display order.
func (l Langues) Spoken() []string {
	var out []string
	for _, e := range []struct {
		code string
		on   bool
	}{{"FR", l.FR}, {"IT", l.IT}, {"EN", l.EN}, {"DE", l.DE}, {"ES", l.ES}} {
		if e.on {
			out = append(out, e.code)
		}
	}
	return out
}

type Formation struct {
	Type    string `json:"type"`
	Libelle string `json:"libelle"`
}

// ExpSignificative is a free-form experience entry. Description is the only
// field the backend reads; any other keys are kept as-is.
type ExpSignificative struct {
	Description string
	Extra       map[string]json.RawMessage
}

func (e ExpSignificative) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(e.Extra)+1)
	for k, v := range e.Extra {
		out[k] = v
	}
	desc, err := json.Marshal(e.Description)
	if err != nil {
		return nil, err
	}
	out["description"] = desc
	return json.Marshal(out)
}

func (e *ExpSignificative) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Description = ""
	if d, ok := raw["description"]; ok {
		var s string
		if err := json.Unmarshal(d, &s); err == nil {
			e.Description = s
		}
		delete(raw, "description")
	}
	if len(raw) == 0 {
		raw = nil
	}
	e.Extra = raw
	return nil
}

func DefaultFormations() []Formation {
	return []Formation{{Type: "", Libelle: ""}}
}

// DecodeLangues parses a stored value. Anything unreadable yields all-false.
func DecodeLangues(stored string) Langues {
	var l Langues
	if isBlankDoc(stored) {
		return l
	}
	if err := json.Unmarshal([]byte(stored), &l); err != nil {
		return Langues{}
	}
	return l
}

// DecodeFormations parses a stored value, falling back to the default entry.
func DecodeFormations(stored string) []Formation {
	if isBlankDoc(stored) {
		return DefaultFormations()
	}
	var f []Formation
	if err := json.Unmarshal([]byte(stored), &f); err != nil || f == nil {
		return DefaultFormations()
	}
	return f
}

// DecodeExpSignificatives parses a stored value, falling back to an empty list.
func DecodeExpSignificatives(stored string) []ExpSignificative {
	if isBlankDoc(stored) {
		return []ExpSignificative{}
	}
	var e []ExpSignificative
	if err := json.Unmarshal([]byte(stored), &e); err != nil || e == nil {
		return []ExpSignificative{}
	}
	return e
}

// EncodeDoc serialises a sub-document for storage.
func EncodeDoc(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isBlankDoc(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "null", "undefined":
		return true
	}
	return false
}

// CleanOptional turns the "null" and "undefined" strings some clients send into nil.
func CleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	switch strings.TrimSpace(*s) {
	case "", "null", "undefined":
		return nil
	}
	return s
}

package roster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SkillSet maps skill names to on/off and keeps the order skills were added.
type SkillSet struct {
	names []string
	on    map[string]bool
}

func NewSkillSet() SkillSet {
	return SkillSet{on: map[string]bool{}}
}

func (s *SkillSet) Set(name string, enabled bool) {
	if s.on == nil {
		s.on = map[string]bool{}
	}
	if _, ok := s.on[name]; !ok {
		s.names = append(s.names, name)
	}
	s.on[name] = enabled
}

func (s SkillSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Enabled lists the skills switched on, in order.
func (s SkillSet) Enabled() []string {
	var out []string
	for _, n := range s.names {
		if s.on[n] {
			out = append(out, n)
		}
	}
	return out
}

func (s SkillSet) Has(name string) bool {
	return s.on[name]
}

// Without drops every key equal to name under case folding.
func (s SkillSet) Without(name string) (SkillSet, bool) {
	out := NewSkillSet()
	removed := false
	for _, n := range s.names {
		if strings.EqualFold(n, name) {
			removed = true
			continue
		}
		out.Set(n, s.on[n])
	}
	return out, removed
}

func (s SkillSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		if s.on[n] {
			buf.WriteString(":true")
		} else {
			buf.WriteString(":false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts {"name": bool} or a list of names (all enabled).
// Any other shape yields an empty set.
func (s *SkillSet) UnmarshalJSON(data []byte) error {
	*s = NewSkillSet()
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '[':
		var items []any
		if err := json.Unmarshal(data, &items); err != nil {
			return nil
		}
		for _, it := range items {
			s.Set(fmt.Sprint(it), true)
		}
	case '{':
		dec := json.NewDecoder(bytes.NewReader(data))
		if _, err := dec.Token(); err != nil {
			return nil
		}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil
			}
			var v any
			if err := dec.Decode(&v); err != nil {
				return nil
			}
			s.Set(fmt.Sprint(keyTok), truthy(v))
		}
	}
	return nil
}

func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case nil:
		return false
	default:
		return true
	}
}

// Profile is one roster entry. Name is unique within a group.
type Profile struct {
	Name        string   `json:"name"`
	Position    string   `json:"position"`
	Contact     string   `json:"contact"`
	Email       string   `json:"email"`
	MedicalExam string   `json:"medical_exam"`
	Skills      SkillSet `json:"skills"`
}

func NewProfile(name string) Profile {
	return Profile{Name: name, Skills: NewSkillSet()}
}

// ExamDaysLeft counts days from today to the medical exam date. ok is false
// when no valid YYYY-MM-DD date is set.
func (p Profile) ExamDaysLeft(today time.Time) (days int, ok bool) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(p.MedicalExam))
	if err != nil {
		return 0, false
	}
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(t).Hours() / 24), true
}

const dateLayout = "2006-01-02"

var profileKeys = []string{"name", "position", "contact", "email", "medical_exam", "skills"}

// DecodeRoster reads a stored roster. Old entries written as bare strings or
// missing fields are normalised; migrated reports that the stored form
// should be rewritten.
func DecodeRoster(payload []byte) (profiles []Profile, migrated bool, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, false, err
	}

	profiles = make([]Profile, 0, len(raw))
	for _, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			profiles = append(profiles, NewProfile(name))
			migrated = true
			continue
		}

		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		for _, k := range profileKeys {
			if _, ok := obj[k]; !ok {
				migrated = true
				break
			}
		}

		p := NewProfile(stringField(obj, "name"))
		p.Position = stringField(obj, "position")
		p.Contact = stringField(obj, "contact")
		p.Email = stringField(obj, "email")
		p.MedicalExam = stringField(obj, "medical_exam")
		if p.MedicalExam == "" {
			p.MedicalExam = stringField(obj, "medical_date")
		}
		if sk, ok := obj["skills"]; ok {
			_ = json.Unmarshal(sk, &p.Skills)
		}
		profiles = append(profiles, p)
	}
	return profiles, migrated, nil
}

func stringField(obj map[string]json.RawMessage, key string) string {
	raw, ok := obj[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func EncodeRoster(profiles []Profile) ([]byte, error) {
	if profiles == nil {
		profiles = []Profile{}
	}
	return json.Marshal(profiles)
}

func indexOf(profiles []Profile, name string) int {
	for i, p := range profiles {
		if p.Name == name {
			return i
		}
	}
	return -1
}

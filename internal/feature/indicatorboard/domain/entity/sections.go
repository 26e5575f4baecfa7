package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Section は指標ボード上のレイアウト用グループです。IDs は登録済み指標または
// カスタム予測指標の id を表示順に保持します。
type Section struct {
	Name string
	IDs  []string
}

// Sections is the ordered section partition of a board.
// It serialises as a JSON object whose keys keep their insertion order.
type Sections []Section

// DefaultSections returns the layout a freshly created board starts with.
func DefaultSections() Sections {
	return Sections{{Name: "section1", IDs: []string{}}}
}

// Names returns the section names in order.
func (s Sections) Names() []string {
	names := make([]string, 0, len(s))
	for _, sec := range s {
		names = append(names, sec.Name)
	}
	return names
}

// Values returns the id lists in section order.
func (s Sections) Values() [][]string {
	values := make([][]string, 0, len(s))
	for _, sec := range s {
		values = append(values, sec.IDs)
	}
	return values
}

// Total is the number of ids across all sections.
func (s Sections) Total() int {
	n := 0
	for _, sec := range s {
		n += len(sec.IDs)
	}
	return n
}

// Clone returns a deep copy. A nil receiver yields nil.
func (s Sections) Clone() Sections {
	if s == nil {
		return nil
	}
	out := make(Sections, len(s))
	for i, sec := range s {
		out[i] = Section{Name: sec.Name, IDs: cloneStrings(sec.IDs)}
	}
	return out
}

func (s Sections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sec.Name)
		if err != nil {
			return nil, err
		}
		ids := sec.IDs
		if ids == nil {
			ids = []string{}
		}
		val, err := json.Marshal(ids)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON keeps the key order of the object and rejects duplicate section names.
// JSON null leaves the receiver nil, {} yields an empty non-nil value.
func (s *Sections) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("sections: %w", err)
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("sections: must be a JSON object")
	}

	out := Sections{}
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("sections: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return errors.New("sections: invalid key")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("sections: duplicate section %q", name)
		}
		seen[name] = struct{}{}

		var ids []string
		if err := dec.Decode(&ids); err != nil {
			return fmt.Errorf("sections: section %q: %w", name, err)
		}
		if ids == nil {
			ids = []string{}
		}
		out = append(out, Section{Name: name, IDs: ids})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("sections: %w", err)
	}

	*s = out
	return nil
}

func cloneStrings(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

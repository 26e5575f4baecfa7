package rule

// SectionNameShouldNotDuplicate is broken when two sections share a name.
type SectionNameShouldNotDuplicate struct {
	names []string
}

func NewSectionNameShouldNotDuplicate(names []string) SectionNameShouldNotDuplicate {
	return SectionNameShouldNotDuplicate{names: names}
}

func (r SectionNameShouldNotDuplicate) IsBroken() bool {
	seen := make(map[string]struct{}, len(r.names))
	for _, name := range r.names {
		if _, ok := seen[name]; ok {
			return true
		}
		seen[name] = struct{}{}
	}
	return false
}

func (r SectionNameShouldNotDuplicate) Message() string {
	return "section names must be unique"
}

package rule

// ShouldNotDuplicate is broken when an id appears more than once.
type ShouldNotDuplicate struct {
	ids []string
}

func NewShouldNotDuplicate(ids []string) ShouldNotDuplicate {
	return ShouldNotDuplicate{ids: ids}
}

func (r ShouldNotDuplicate) IsBroken() bool {
	seen := make(map[string]struct{}, len(r.ids))
	for _, id := range r.ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

func (r ShouldNotDuplicate) Message() string {
	return "indicator is already registered"
}

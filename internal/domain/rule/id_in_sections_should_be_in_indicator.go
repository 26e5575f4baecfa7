package rule

// IDInSectionsShouldBeInIndicator is broken when a section references an id that is
// neither a registered indicator nor a registered custom forecast indicator.
type IDInSectionsShouldBeInIndicator struct {
	indicatorIDs      []string
	customForecastIDs []string
	sections          [][]string
}

// sections are the id lists of every section, in section order.
func NewIDInSectionsShouldBeInIndicator(indicatorIDs, customForecastIDs []string, sections [][]string) IDInSectionsShouldBeInIndicator {
	return IDInSectionsShouldBeInIndicator{
		indicatorIDs:      indicatorIDs,
		customForecastIDs: customForecastIDs,
		sections:          sections,
	}
}

func (r IDInSectionsShouldBeInIndicator) IsBroken() bool {
	registered := make(map[string]struct{}, len(r.indicatorIDs)+len(r.customForecastIDs))
	for _, id := range r.indicatorIDs {
		registered[id] = struct{}{}
	}
	for _, id := range r.customForecastIDs {
		registered[id] = struct{}{}
	}
	for _, ids := range r.sections {
		for _, id := range ids {
			if _, ok := registered[id]; !ok {
				return true
			}
		}
	}
	return false
}

func (r IDInSectionsShouldBeInIndicator) Message() string {
	return "sections can only contain indicators registered on the board"
}

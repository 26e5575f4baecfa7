package rule

// OnlyRegisteredIDCanBeRemoved is broken when targetID is not among ids.
type OnlyRegisteredIDCanBeRemoved struct {
	ids      []string
	targetID string
}

func NewOnlyRegisteredIDCanBeRemoved(ids []string, targetID string) OnlyRegisteredIDCanBeRemoved {
	return OnlyRegisteredIDCanBeRemoved{ids: ids, targetID: targetID}
}

func (r OnlyRegisteredIDCanBeRemoved) IsBroken() bool {
	return !contains(r.ids, r.targetID)
}

func (r OnlyRegisteredIDCanBeRemoved) Message() string {
	return "only registered indicators can be removed"
}

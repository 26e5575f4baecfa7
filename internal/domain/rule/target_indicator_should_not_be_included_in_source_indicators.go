package rule

// TargetIndicatorShouldNotBeIncludedInSourceIndicators is broken when a custom forecast
// indicator lists its own target among the indicators it is derived from.
type TargetIndicatorShouldNotBeIncludedInSourceIndicators struct {
	sourceIDs []string
	targetID  string
}

func NewTargetIndicatorShouldNotBeIncludedInSourceIndicators(sourceIDs []string, targetID string) TargetIndicatorShouldNotBeIncludedInSourceIndicators {
	return TargetIndicatorShouldNotBeIncludedInSourceIndicators{sourceIDs: sourceIDs, targetID: targetID}
}

func (r TargetIndicatorShouldNotBeIncludedInSourceIndicators) IsBroken() bool {
	return contains(r.sourceIDs, r.targetID)
}

func (r TargetIndicatorShouldNotBeIncludedInSourceIndicators) Message() string {
	return "the target indicator cannot be used as a source indicator"
}

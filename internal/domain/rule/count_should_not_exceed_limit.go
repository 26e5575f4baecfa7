package rule

import "fmt"

// CountShouldNotExceedLimit is broken when the groups together hold more than
// MaxReferenceCount ids. Groups are the section values of a board, or its
// indicator and custom forecast indicator collections.
type CountShouldNotExceedLimit struct {
	groups [][]string
}

func NewCountShouldNotExceedLimit(groups ...[]string) CountShouldNotExceedLimit {
	return CountShouldNotExceedLimit{groups: groups}
}

func (r CountShouldNotExceedLimit) IsBroken() bool {
	total := 0
	for _, g := range r.groups {
		total += len(g)
	}
	return total > MaxReferenceCount
}

func (r CountShouldNotExceedLimit) Message() string {
	return fmt.Sprintf("an indicator board can hold at most %d indicators", MaxReferenceCount)
}

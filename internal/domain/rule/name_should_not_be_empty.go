package rule

import "strings"

// NameShouldNotBeEmpty is broken when the name is empty or whitespace only.
type NameShouldNotBeEmpty struct {
	name string
}

func NewNameShouldNotBeEmpty(name string) NameShouldNotBeEmpty {
	return NameShouldNotBeEmpty{name: name}
}

func (r NameShouldNotBeEmpty) IsBroken() bool {
	return len(strings.TrimSpace(r.name)) == 0
}

func (r NameShouldNotBeEmpty) Message() string {
	return "name must not be empty"
}

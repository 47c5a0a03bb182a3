package sim

import "regexp"

// A Named object carries a hierarchical name. Name tokens are separated by
// dots, as in "Session.ReadyQueue".
type Named interface {
	Name() string
}

var nameTokenRegexp = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// NameMustBeValid panics if the name is not a dot-separated series of
// identifier tokens.
func NameMustBeValid(name string) {
	if name == "" {
		panic("name must not be empty")
	}

	start := 0
	for i := 0; i <= len(name); i++ {
		if i == len(name) || name[i] == '.' {
			token := name[start:i]
			if !nameTokenRegexp.MatchString(token) {
				panic("invalid name token " + token + " in name " + name)
			}
			start = i + 1
		}
	}
}

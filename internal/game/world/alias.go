package world

// AliasTable maps a stable name to an ordered list of candidate stable names
// that stand in for it in eras where it does not exist.
type AliasTable map[string][]string

// Candidates returns the aliases of name in priority order.
//
// Postcondition: Returns nil when name has no aliases.
func (t AliasTable) Candidates(name string) []string {
	return t[name]
}

// Resolve returns the first candidate of name that satisfies available.
// Aliases of aliases are never consulted.
//
// Postcondition: Returns (alias, true) for the first match in list order,
// or ("", false) when none match.
func (t AliasTable) Resolve(name string, available func(string) bool) (string, bool) {
	for _, alias := range t[name] {
		if available(alias) {
			return alias, true
		}
	}
	return "", false
}

package cli

import (
	"sort"

	"github.com/gertd/go-pluralize"
)

var pluralizer = pluralize.NewClient()

// plural renders "1 row", "47 rows".
func plural(word string, n int) string {
	return pluralizer.Pluralize(word, n, true)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

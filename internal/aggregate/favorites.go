package aggregate

import (
	"slices"
	"strings"
)

// Favorites answers whether a symbol is on the user's list. Storage lives
// outside this package.
type Favorites interface {
	IsFavorite(symbol string) bool
	Symbols() []string
}

// StaticFavorites is a fixed, case-insensitive favorites set.
type StaticFavorites map[string]struct{}

// NewStaticFavorites upper-cases and de-duplicates symbols. Blank entries
// are dropped.
func NewStaticFavorites(symbols []string) StaticFavorites {
	f := make(StaticFavorites, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			f[s] = struct{}{}
		}
	}
	return f
}

func (f StaticFavorites) IsFavorite(symbol string) bool {
	_, ok := f[strings.ToUpper(strings.TrimSpace(symbol))]
	return ok
}

// Symbols returns the set in ascending order.
func (f StaticFavorites) Symbols() []string {
	out := make([]string, 0, len(f))
	for s := range f {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

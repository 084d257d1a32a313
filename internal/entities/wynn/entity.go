package wynn

import (
	"sort"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// GroupByType buckets entities by their type, keeping input order
func GroupByType[T core.Entity](entities []T) map[string][]T {
	out := make(map[string][]T)
	for _, e := range entities {
		out[e.GetType()] = append(out[e.GetType()], e)
	}
	return out
}

// SortedByID returns the values of byID ordered by entity ID
func SortedByID[T core.Entity](byID map[string]T) []T {
	out := make([]T, 0, len(byID))
	for _, e := range byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GetID() < out[j].GetID()
	})
	return out
}

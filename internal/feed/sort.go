package feed

import (
	"sort"

	"greenpatch/internal/models"
)

// Sort returns a reordered copy of posts. "new" orders by id, newest first.
// "top" and "hot" both order by net score; hot has no time decay. Ties keep
// their input order. Unknown modes sort as hot.
func Sort(posts []models.Post, mode models.SortMode) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)

	switch mode {
	case models.SortNew:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Score() > out[j].Score() })
	}
	return out
}

// ParseSortMode maps user input to a SortMode, defaulting to hot.
func ParseSortMode(s string) models.SortMode {
	switch models.SortMode(s) {
	case models.SortNew, models.SortTop:
		return models.SortMode(s)
	}
	return models.SortHot
}

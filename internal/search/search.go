// Package search filters the user list for the interactive "/" filter.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"

	"github.com/mmcdole/roster/internal/domain"
)

// Match is one filtered user
type Match struct {
	Index          int   // Index in the source slice
	MatchedIndexes []int // Rune positions in the name that matched (for highlighting)
	ByEmail        bool  // Matched on the email address only
}

// nameIndex implements sahilm/fuzzy.Source over lowercase names
type nameIndex struct {
	lowerNames []string
}

func (idx nameIndex) String(i int) string { return idx.lowerNames[i] }
func (idx nameIndex) Len() int            { return len(idx.lowerNames) }

// Filter returns the users matching query. Name matches come first, best
// first; users whose email alone matches follow, closest first. An empty
// query returns nil.
func Filter(users []domain.User, query string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	idx := nameIndex{lowerNames: make([]string, len(users))}
	emails := make([]string, len(users))
	for i, u := range users {
		idx.lowerNames[i] = strings.ToLower(u.Name)
		emails[i] = u.Email
	}

	nameMatches := sfuzzy.FindFrom(query, idx)

	matched := make(map[int]bool, len(nameMatches))
	results := make([]Match, 0, len(nameMatches))
	for _, m := range nameMatches {
		matched[m.Index] = true
		results = append(results, Match{
			Index:          m.Index,
			MatchedIndexes: runePositions(idx.lowerNames[m.Index], m.MatchedIndexes),
		})
	}

	// Email fallback for users the name pass missed
	ranks := fuzzy.RankFindNormalizedFold(query, emails)
	sort.Stable(ranks)
	for _, r := range ranks {
		if matched[r.OriginalIndex] {
			continue
		}
		matched[r.OriginalIndex] = true
		results = append(results, Match{
			Index:   r.OriginalIndex,
			ByEmail: true,
		})
	}

	return results
}

// runePositions converts byte offsets in s to rune positions
func runePositions(s string, byteOffsets []int) []int {
	if len(byteOffsets) == 0 {
		return nil
	}
	byRune := make(map[int]int, len(s))
	n := 0
	for b := range s {
		byRune[b] = n
		n++
	}
	out := make([]int, 0, len(byteOffsets))
	for _, b := range byteOffsets {
		if r, ok := byRune[b]; ok {
			out = append(out, r)
		}
	}
	return out
}

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/roster/internal/domain"
)

var users = []domain.User{
	{ID: 1, Name: "Ada Lovelace", Email: "ada@example.com"},
	{ID: 2, Name: "Grace Hopper", Email: "grace@navy.example"},
	{ID: 3, Name: "Alan Turing", Email: "enigma@bletchley.example"},
}

func indexes(matches []Match) []int {
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}

func TestFilter_EmptyQuery(t *testing.T) {
	assert.Nil(t, Filter(users, ""))
	assert.Nil(t, Filter(users, "   "))
}

func TestFilter_NameMatchIsCaseInsensitive(t *testing.T) {
	matches := Filter(users, "GRACE")
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Index)
	assert.False(t, matches[0].ByEmail)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, matches[0].MatchedIndexes)
}

func TestFilter_FuzzyName(t *testing.T) {
	matches := Filter(users, "atrng")
	assert.Equal(t, []int{2}, indexes(matches))
}

func TestFilter_EmailFallback(t *testing.T) {
	matches := Filter(users, "bletchley")
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Index)
	assert.True(t, matches[0].ByEmail)
	assert.Empty(t, matches[0].MatchedIndexes)
}

func TestFilter_NameMatchesPrecedeEmailMatches(t *testing.T) {
	// "ada" is in Ada's name; nobody else has it in their name or email
	matches := Filter(users, "ada")
	require.NotEmpty(t, matches)
	assert.Equal(t, 0, matches[0].Index)
	assert.False(t, matches[0].ByEmail)

	seen := map[int]bool{}
	for _, m := range matches {
		assert.False(t, seen[m.Index], "user %d listed twice", m.Index)
		seen[m.Index] = true
	}
}

func TestFilter_NoMatch(t *testing.T) {
	assert.Empty(t, Filter(users, "zzzz"))
}

func TestFilter_HighlightPositionsAreRunes(t *testing.T) {
	matches := Filter([]domain.User{{Name: "Zoë Ödegaard"}}, "Öde")
	require.Len(t, matches, 1)
	// "zoë ödegaard": ö is rune 4, d is 5, e is 6
	assert.Equal(t, []int{4, 5, 6}, matches[0].MatchedIndexes)
}

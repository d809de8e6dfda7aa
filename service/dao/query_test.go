package dao

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	ID    int
	Group string
}

func TestQuery_Apply(t *testing.T) {
	items := func() []*item {
		return []*item{{ID: 3, Group: "a"}, {ID: 1, Group: "b"}, {ID: 2, Group: "a"}, {ID: 4, Group: "b"}}
	}
	byID := func(a, b *item) bool { return a.ID < b.ID }
	var testCases = []struct {
		description string
		query       *Query[item]
		expect      []int
	}{
		{description: "nil query", query: nil, expect: []int{3, 1, 2, 4}},
		{description: "sorted", query: &Query[item]{Sort: byID}, expect: []int{1, 2, 3, 4}},
		{description: "sorted limit", query: &Query[item]{Sort: byID, Limit: 2}, expect: []int{1, 2}},
		{description: "sorted skip", query: &Query[item]{Sort: byID, Skip: 1}, expect: []int{2, 3, 4}},
		{description: "skip past end", query: &Query[item]{Skip: 10}, expect: []int{}},
		{description: "skip and limit", query: &Query[item]{Sort: byID, Skip: 1, Limit: 2}, expect: []int{2, 3}},
	}
	for _, testCase := range testCases {
		actual := testCase.query.Apply(items())
		ids := make([]int, 0, len(actual))
		for _, candidate := range actual {
			ids = append(ids, candidate.ID)
		}
		assert.Equal(t, testCase.expect, ids, testCase.description)
	}
}

func TestAnd(t *testing.T) {
	groupA := Filter[item](func(i *item) bool { return i.Group == "a" })
	even := Filter[item](func(i *item) bool { return i.ID%2 == 0 })
	filter := And(groupA, even, nil)
	assert.True(t, filter.Matches(&item{ID: 2, Group: "a"}))
	assert.False(t, filter.Matches(&item{ID: 3, Group: "a"}))
	assert.False(t, filter.Matches(&item{ID: 2, Group: "b"}))
	var none Filter[item]
	assert.True(t, none.Matches(&item{}))
}

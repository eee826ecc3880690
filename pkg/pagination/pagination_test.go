package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Params
		want Params
	}{
		{"zero values", Params{}, Params{PageNumber: 1, PageSize: 10}},
		{"negative", Params{PageNumber: -2, PageSize: -1}, Params{PageNumber: 1, PageSize: 10}},
		{"kept", Params{PageNumber: 3, PageSize: 25}, Params{PageNumber: 3, PageSize: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestOffsetLimit(t *testing.T) {
	p := Params{PageNumber: 3, PageSize: 10}
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 10, p.Limit())
}

func TestSliceLastPartialPage(t *testing.T) {
	all := make([]int, 25)
	for i := range all {
		all[i] = i
	}
	page := Slice(all, Params{PageNumber: 3, PageSize: 10})
	assert.Equal(t, []int{20, 21, 22, 23, 24}, page.Records)
	assert.Equal(t, 5, page.RecordsOnThisPage)
	assert.EqualValues(t, 25, page.TotalMatchingRecords)
}

func TestSlicePastEnd(t *testing.T) {
	page := Slice([]string{"a"}, Params{PageNumber: 4, PageSize: 10})
	assert.NotNil(t, page.Records)
	assert.Empty(t, page.Records)
	assert.EqualValues(t, 1, page.TotalMatchingRecords)
}

func TestMap(t *testing.T) {
	page := Map(NewPage([]int{1, 2}, 7), func(i int) string { return string(rune('a' + i)) })
	assert.Equal(t, []string{"b", "c"}, page.Records)
	assert.EqualValues(t, 7, page.TotalMatchingRecords)
}

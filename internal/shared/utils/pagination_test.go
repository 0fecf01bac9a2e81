package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	data := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name        string
		limit       int
		offset      int
		wantItems   []int
		wantHasNext bool
		wantHasPrev bool
	}{
		{"first page", 3, 0, []int{1, 2, 3}, true, false},
		{"middle page", 3, 3, []int{4, 5, 6}, true, true},
		{"last full page", 3, 7, []int{8, 9, 10}, false, true},
		{"partial last page", 4, 8, []int{9, 10}, false, true},
		{"offset past end", 5, 20, []int{}, false, true},
		{"exact boundary", 5, 5, []int{6, 7, 8, 9, 10}, false, true},
		{"zero limit", 0, 0, []int{}, true, false},
		{"limit covers all", 20, 0, data, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, meta := Paginate(data, tt.limit, tt.offset)

			assert.Equal(t, tt.wantItems, append([]int{}, items...))
			assert.Equal(t, len(data), meta.Total)
			assert.Equal(t, tt.limit, meta.Limit)
			assert.Equal(t, tt.offset, meta.Offset)
			assert.Equal(t, tt.wantHasNext, meta.HasNext, "hasNext")
			assert.Equal(t, tt.wantHasPrev, meta.HasPrev, "hasPrev")
		})
	}
}

func TestPaginateNeverExceedsLimit(t *testing.T) {
	data := make([]string, 37)

	for offset := 0; offset <= 40; offset += 7 {
		for limit := 0; limit <= 15; limit += 5 {
			items, meta := Paginate(data, limit, offset)

			assert.LessOrEqual(t, len(items), limit)
			assert.Equal(t, offset+limit < len(data), meta.HasNext)
			assert.Equal(t, offset > 0, meta.HasPrev)
		}
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	items, meta := Paginate([]int{}, 10, 0)

	assert.Empty(t, items)
	assert.Equal(t, 0, meta.Total)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}

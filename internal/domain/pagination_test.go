package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page       int
		limit      int
		totalPages int
		offset     int
		next, prev bool
	}{
		{"first of three", 25, 1, 10, 3, 0, true, false},
		{"last page", 25, 3, 10, 3, 20, false, true},
		{"exact fit", 20, 2, 10, 2, 10, false, true},
		{"empty", 0, 1, 10, 0, 0, false, false},
		{"unlimited", 7, 1, 0, 1, 0, false, false},
		{"page clamped", 5, 0, 10, 1, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.offset, p.Offset())
			assert.Equal(t, tt.next, p.HasNext())
			assert.Equal(t, tt.prev, p.HasPrevious())
		})
	}
}

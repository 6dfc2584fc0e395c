package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPager(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		size      int
		total     int64
		wantPages int
		wantNext  bool
	}{
		{"empty", 1, 10, 0, 0, false},
		{"exact fit", 1, 10, 10, 1, false},
		{"first of three", 1, 10, 25, 3, true},
		{"last of three", 3, 10, 25, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPager(tt.page, tt.size, tt.total)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantNext, p.HasNext)
			assert.Equal(t, tt.total, p.TotalCount)
		})
	}
}

func TestNormalizePage(t *testing.T) {
	page, size := NormalizePage(0, 0, DefaultPaginationConfig)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)

	_, size = NormalizePage(2, 500, DefaultPaginationConfig)
	assert.Equal(t, 100, size)

	assert.Equal(t, 20, GetPageOffset(3, 10))
}

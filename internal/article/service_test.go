package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		name     string
		page     int
		size     int
		wantPage int
		wantSize int
	}{
		{"defaults pass through", 0, 10, 0, 10},
		{"negative page clamps to zero", -3, 10, 0, 10},
		{"zero size clamps to one", 2, 0, 2, 1},
		{"oversized page size clamps", 0, 1000, 0, maxPageSize},
		{"search page size passes through", 1, 15, 1, 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, size := normalizePage(tc.page, tc.size)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantSize, size)
		})
	}
}

package dto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name               string
		total, page, limit int
		wantTotalPages     int
	}{
		{"empty", 0, 1, 10, 0},
		{"exact multiple", 20, 1, 10, 2},
		{"partial last page", 21, 1, 10, 3},
		{"single item", 1, 1, 10, 1},
		{"limit one", 7, 3, 1, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := NewPagination(tc.total, tc.page, tc.limit)
			require.Equal(t, tc.total, p.Total)
			require.Equal(t, tc.page, p.Page)
			require.Equal(t, tc.limit, p.Limit)
			require.Equal(t, tc.wantTotalPages, p.TotalPages)
		})
	}
}

func TestNewPaginationCeil(t *testing.T) {
	t.Parallel()

	// totalPages is always ceil(total/limit).
	for total := 0; total <= 50; total++ {
		for limit := 1; limit <= 7; limit++ {
			p := NewPagination(total, 1, limit)
			want := total / limit
			if total%limit != 0 {
				want++
			}
			require.Equal(t, want, p.TotalPages, "total=%d limit=%d", total, limit)
		}
	}
}

package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageSlice(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5, 6, 7}

	require.Equal(t, []int{1, 2, 3}, pageSlice(items, 1, 3))
	require.Equal(t, []int{4, 5, 6}, pageSlice(items, 2, 3))
	require.Equal(t, []int{7}, pageSlice(items, 3, 3))

	// Out-of-range pages yield empty sets, never a panic.
	require.Empty(t, pageSlice(items, 4, 3))
	require.Empty(t, pageSlice(items, 99, 3))
	require.Empty(t, pageSlice([]int{}, 1, 3))

	// Limit larger than the set returns everything.
	require.Equal(t, items, pageSlice(items, 1, 100))
}

func TestNewLocaleCollator(t *testing.T) {
	t.Parallel()

	// Unknown locales collate as und instead of failing.
	require.NotNil(t, newLocaleCollator("zz-unknown"))
	require.NotNil(t, newLocaleCollator(""))

	fr := newLocaleCollator("fr")
	require.Negative(t, fr.CompareString("éclair", "enfer"))
	require.Negative(t, fr.CompareString("enfer", "fantôme"))
}

package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddEvictsOldestWhenFull(t *testing.T) {
	p := New[string](2)
	area := AreaKey{AreaID: 1}

	p.Add(area, 1, "a")
	p.Add(area, 2, "b")
	p.Add(area, 3, "c") // evicts id 1

	require.False(t, p.Contains(area, 1))
	require.True(t, p.Contains(area, 2))
	require.True(t, p.Contains(area, 3))
	require.Equal(t, 2, p.EntriesInArea(area))
}

func TestAddSameIDReplacesWithoutReordering(t *testing.T) {
	p := New[string](3)
	area := AreaKey{AreaID: 1}

	p.Add(area, 1, "a")
	p.Add(area, 2, "b")
	p.Add(area, 1, "a-updated")

	recent := p.RecentSet(area, 10, nil)
	require.Equal(t, []string{"b", "a-updated"}, recent)
}

func TestFindAndRemove(t *testing.T) {
	p := New[string](3)
	area := AreaKey{AreaID: 1}

	p.Add(area, 1, "a")
	v, ok := p.Find(area, 1)
	require.True(t, ok)
	require.Equal(t, "a", v)

	p.Remove(area, 1)
	require.False(t, p.Contains(area, 1))
	require.Equal(t, 0, p.EntriesInArea(area))
}

func TestRecentSetReturnsNewestFirst(t *testing.T) {
	p := New[int](10)
	area := AreaKey{AreaID: 1}

	for i := 1; i <= 5; i++ {
		p.Add(area, uint32(i), i*10)
	}

	require.Equal(t, []int{50, 40, 30}, p.RecentSet(area, 3, nil))
}

func TestRecentSetAppliesFilter(t *testing.T) {
	p := New[int](10)
	area := AreaKey{AreaID: 1}
	for i := 1; i <= 5; i++ {
		p.Add(area, uint32(i), i)
	}

	even := p.RecentSet(area, 10, func(v int) bool { return v%2 == 0 })
	require.Equal(t, []int{4, 2}, even)
}

func TestRandomSetRespectsCapAndFilter(t *testing.T) {
	p := New[int](10)
	area := AreaKey{AreaID: 1}
	for i := 1; i <= 10; i++ {
		p.Add(area, uint32(i), i)
	}

	sample := p.RandomSet(area, 3, func(v int) bool { return v%2 == 0 })
	require.Len(t, sample, 3)
	for _, v := range sample {
		require.Zero(t, v%2)
	}
}

func TestAreasAreIndependent(t *testing.T) {
	p := New[string](2)
	a1 := AreaKey{AreaID: 1}
	a2 := AreaKey{AreaID: 2}

	p.Add(a1, 1, "a1-one")
	p.Add(a2, 1, "a2-one")

	require.Equal(t, 1, p.EntriesInArea(a1))
	require.Equal(t, 1, p.EntriesInArea(a2))
	require.Equal(t, 2, p.TotalEntries())
}

func TestCellSubGridDistinguishesAreas(t *testing.T) {
	p := New[int](10)
	withCell := AreaKey{AreaID: 1, CellID: 5}
	withoutCell := AreaKey{AreaID: 1}

	p.Add(withCell, 1, 100)
	require.False(t, p.Contains(withoutCell, 1))
	require.True(t, p.Contains(withCell, 1))
}

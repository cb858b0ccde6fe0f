package topology

import (
	"sort"

	"github.com/scigolib/meshkit/internal/utils"
)

// entityArena deduplicates k-entities (edges, faces) keyed by their
// unordered vertex-id set, per §4.4/§9: "key each k-entity by a sorted
// vertex-id tuple; retain insertion order for stable global numbering."
// It hands out dense integer ids in first-seen order, backed by a
// slice (not per-entity heap allocation).
type entityArena struct {
	index   map[string]int64
	vertSet [][]int64 // the entity's vertex ids, in first-seen (local) order
}

func newEntityArena() *entityArena {
	return &entityArena{index: make(map[string]int64)}
}

// intern records verts (a local entity's vertex-id tuple, in the
// orientation the caller discovered it) and returns its dense global
// id: the first caller to present a given unordered vertex set wins the
// orientation that is stored; later callers just get the id back.
func (a *entityArena) intern(verts []int64) int64 {
	key := sortedKey(verts)
	if id, ok := a.index[key]; ok {
		return id
	}
	id := int64(len(a.vertSet))
	a.index[key] = id
	stored := append([]int64(nil), verts...)
	a.vertSet = append(a.vertSet, stored)
	return id
}

// vertsOf returns the vertex-id tuple an arena id was interned with.
func (a *entityArena) vertsOf(id int64) []int64 { return a.vertSet[id] }

// len reports the number of distinct entities interned.
func (a *entityArena) len() int { return len(a.vertSet) }

// sortedKey builds the arena's string key for an unordered vertex-id
// tuple. The scratch buffer it appends digits into comes from a
// sync.Pool-backed buffer pool, since this runs once per intern() call
// on every cell-to-entity edge in the cascade.
func sortedKey(verts []int64) string {
	sorted := append([]int64(nil), verts...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	b := utils.GetBuffer(0)
	for i, v := range sorted {
		if i > 0 {
			b = append(b, ',')
		}
		b = appendInt64(b, v)
	}
	key := string(b)
	utils.ReleaseBuffer(b)
	return key
}

func appendInt64(b []byte, v int64) []byte {
	if v == 0 {
		return append(b, '0')
	}
	neg := v < 0
	if neg {
		v = -v
	}
	start := len(b)
	for v > 0 {
		b = append(b, byte('0'+v%10))
		v /= 10
	}
	if neg {
		b = append(b, '-')
	}
	// reverse the digits just appended
	for i, j := start, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

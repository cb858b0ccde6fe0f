package partition

import (
	"testing"

	"github.com/scigolib/meshkit"
	"github.com/stretchr/testify/require"
)

// buildQuadDomain returns a domain Node with one uniform n x n quad
// topology/coordset pair, matching a "10x10 quad domain"
// partition scenario.
func buildQuadDomain(n int) *meshkit.Node {
	nPoints := (n + 1) * (n + 1)
	xs := make([]float64, nPoints)
	ys := make([]float64, nPoints)
	idx := 0
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			xs[idx] = float64(i)
			ys[idx] = float64(j)
			idx++
		}
	}

	var conn []int64
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			p := func(di, dj int) int64 { return int64((j+dj)*(n+1) + i + di) }
			conn = append(conn, p(0, 0), p(1, 0), p(1, 1), p(0, 1))
		}
	}

	domain := meshkit.New()
	domain.Path("coordsets/coords/type").Set("explicit")
	domain.Path("coordsets/coords/values/x").Set(xs)
	domain.Path("coordsets/coords/values/y").Set(ys)
	domain.Path("topologies/mesh/type").Set("unstructured")
	domain.Path("topologies/mesh/coordset").Set("coords")
	domain.Path("topologies/mesh/elements/shape").Set("quad")
	domain.Path("topologies/mesh/elements/connectivity").Set(conn)
	return domain
}

func TestGeneratePartitionFieldSingleWorker(t *testing.T) {
	domain := buildQuadDomain(10)
	err := GeneratePartitionField(SingleRank{}, RoundRobin(), []*meshkit.Node{domain}, Options{Partitions: 4})
	require.NoError(t, err)

	result := domain.Child("parmetis_result").AsInt64Slice()
	require.Len(t, result, 100)
	for _, p := range result {
		require.GreaterOrEqual(t, p, int64(0))
		require.Less(t, p, int64(4))
	}

	gvids := domain.Child("global_vertex_ids").AsInt64Slice()
	require.Len(t, gvids, 121)
	geids := domain.Child("global_element_ids").AsInt64Slice()
	require.Len(t, geids, 100)
}

// twoRankComm simulates a two-worker scenario in-process: each MaxReduce
// call takes the element-wise max of the caller's vector and the next
// entry of peerVectors, mirroring what a real two-rank all-reduce would
// produce once both workers have contributed their one-hot slices —
// sufficient to exercise the driver's global-numbering math without a
// real transport.
type twoRankComm struct {
	rank int
	size int
	// peerVectors simulates the other worker's contribution, one vector
	// per MaxReduce call in call order (true max-reduce behavior for
	// disjoint one-hot inputs).
	peerVectors [][]int64
	calls       int
}

func (c *twoRankComm) MaxReduce(v []int64) ([]int64, error) {
	peer := c.peerVectors[c.calls]
	c.calls++
	out := make([]int64, len(v))
	for i := range v {
		out[i] = v[i]
		if peer[i] > out[i] {
			out[i] = peer[i]
		}
	}
	return out, nil
}
func (c *twoRankComm) Rank() int { return c.rank }
func (c *twoRankComm) Size() int { return c.size }

func TestGeneratePartitionFieldTwoWorkersGlobalIDsDisjoint(t *testing.T) {
	domainA := buildQuadDomain(10)
	domainB := buildQuadDomain(10)

	// Each worker reports its own count at its own index; the "peer"
	// vectors below are what the other worker independently contributes
	// to the element-count and vertex-count reductions, so the max-reduce
	// result is identical on both sides: [100, 100] elements, [121, 121]
	// vertices.
	commA := &twoRankComm{rank: 0, size: 2, peerVectors: [][]int64{{0, 100}, {0, 121}}}
	commB := &twoRankComm{rank: 1, size: 2, peerVectors: [][]int64{{100, 0}, {121, 0}}}

	err := GeneratePartitionField(commA, RoundRobin(), []*meshkit.Node{domainA}, Options{Partitions: 4})
	require.NoError(t, err)
	err = GeneratePartitionField(commB, RoundRobin(), []*meshkit.Node{domainB}, Options{Partitions: 4})
	require.NoError(t, err)

	gvidsA := domainA.Child("global_vertex_ids").AsInt64Slice()
	gvidsB := domainB.Child("global_vertex_ids").AsInt64Slice()
	require.Len(t, gvidsA, 121)
	require.Len(t, gvidsB, 121)
	require.Equal(t, int64(0), gvidsA[0])
	require.Equal(t, int64(121), gvidsB[0])

	geidsA := domainA.Child("global_element_ids").AsInt64Slice()
	geidsB := domainB.Child("global_element_ids").AsInt64Slice()
	require.Equal(t, int64(0), geidsA[0])
	require.Equal(t, int64(100), geidsB[0])

	resultA := domainA.Child("parmetis_result").AsInt64Slice()
	resultB := domainB.Child("parmetis_result").AsInt64Slice()
	require.Len(t, resultA, 100)
	require.Len(t, resultB, 100)
	for _, p := range append(append([]int64{}, resultA...), resultB...) {
		require.GreaterOrEqual(t, p, int64(0))
		require.Less(t, p, int64(4))
	}
}

func TestGeneratePartitionFieldFieldPrefix(t *testing.T) {
	domain := buildQuadDomain(2)
	err := GeneratePartitionField(SingleRank{}, RoundRobin(), []*meshkit.Node{domain}, Options{Partitions: 2, FieldPrefix: "mesh_"})
	require.NoError(t, err)
	require.True(t, domain.HasChild("mesh_parmetis_result"))
	require.False(t, domain.HasChild("parmetis_result"))
}

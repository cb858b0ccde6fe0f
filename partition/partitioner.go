package partition

import "fmt"

// Partitioner wraps the opaque external graph-partitioning routine
// (ParMETIS or equivalent), per §6's "external partitioner call": flat
// CSR-style element/vertex arrays in, one partition id per local
// element out. The real routine stays an external collaborator; this
// package only shapes the call.
type Partitioner interface {
	Partition(eldist, eptr, eind []int64, opts Options) ([]int64, error)
}

// roundRobinPartitioner is a deterministic stand-in for the external
// partitioner: it assigns local element i to partition i%nparts. It
// never inspects adjacency, so it is unsuitable for anything but
// exercising the driver's plumbing.
type roundRobinPartitioner struct{}

// RoundRobin returns a deterministic Partitioner fake for tests and
// local use, never a substitute for real graph partitioning.
func RoundRobin() Partitioner { return roundRobinPartitioner{} }

func (roundRobinPartitioner) Partition(eldist, eptr, eind []int64, opts Options) ([]int64, error) {
	if len(eptr) == 0 {
		return nil, fmt.Errorf("partition: eptr must have at least one entry")
	}
	nElems := len(eptr) - 1
	nParts := opts.Partitions
	if nParts <= 0 {
		nParts = 1
	}
	part := make([]int64, nElems)
	for i := range part {
		part[i] = int64(i % nParts)
	}
	return part, nil
}

package partition

// Communicator is the narrow collective interface the driver needs,
// per §6: exactly one reduction and a rank/size query, plus the
// partitioner call-out (modeled separately by Partitioner).
type Communicator interface {
	// MaxReduce returns, element-wise, the maximum of v across all
	// workers.
	MaxReduce(v []int64) ([]int64, error)
	Rank() int
	Size() int
}

// SingleRank is a Communicator for the unparallelized, single-worker
// case: MaxReduce is the identity, Rank is always 0, Size is always 1.
// It backs local (non-MPI) use and exercises the driver without a real
// transport.
type SingleRank struct{}

func (SingleRank) MaxReduce(v []int64) ([]int64, error) {
	out := make([]int64, len(v))
	copy(out, v)
	return out, nil
}

func (SingleRank) Rank() int { return 0 }
func (SingleRank) Size() int { return 1 }

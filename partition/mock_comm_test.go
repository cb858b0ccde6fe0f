package partition

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/scigolib/meshkit"
	"github.com/stretchr/testify/require"
)

// TestGeneratePartitionFieldUsesExactlyTwoMaxReduces asserts the
// driver's collective usage matches §6's "exactly two collectives"
// contract for a single-domain, single-worker run: one MaxReduce for
// element counts, one for vertex counts (the domain-count exchange is
// skipped here since Partitions is explicit).
func TestGeneratePartitionFieldUsesExactlyTwoMaxReduces(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockComm := NewMockCommunicator(ctrl)
	mockComm.EXPECT().Rank().Return(0).AnyTimes()
	mockComm.EXPECT().Size().Return(1).AnyTimes()
	mockComm.EXPECT().MaxReduce(gomock.Any()).DoAndReturn(
		func(v []int64) ([]int64, error) {
			out := make([]int64, len(v))
			copy(out, v)
			return out, nil
		}).Times(2)

	domain := buildQuadDomain(2)
	err := GeneratePartitionField(mockComm, RoundRobin(), []*meshkit.Node{domain}, Options{Partitions: 2})
	require.NoError(t, err)
}

func TestGeneratePartitionFieldDomainCountExchangeWhenUnset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockComm := NewMockCommunicator(ctrl)
	mockComm.EXPECT().Rank().Return(0).AnyTimes()
	mockComm.EXPECT().Size().Return(1).AnyTimes()
	mockComm.EXPECT().MaxReduce(gomock.Any()).DoAndReturn(
		func(v []int64) ([]int64, error) {
			out := make([]int64, len(v))
			copy(out, v)
			return out, nil
		}).Times(3) // element counts, vertex counts, domain counts

	domain := buildQuadDomain(2)
	err := GeneratePartitionField(mockComm, RoundRobin(), []*meshkit.Node{domain}, Options{})
	require.NoError(t, err)
}

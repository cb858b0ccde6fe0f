package partition

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/scigolib/meshkit"
)

func errNoTopology() error {
	return fmt.Errorf("partition: domain has no topologies to select from")
}

// GeneratePartitionField runs the four-step algorithm of §4.5 across
// every local domain owned by this worker: global numbering, input
// assembly, invocation of partitioner, and writeback. domains are the
// local worker's own Node trees (each with coordsets/<name> and
// topologies/<name> children); comm supplies the two collectives
// (max-reduce, rank/size) this worker needs to agree on a global vertex
// and element numbering with its peers.
//
// Every invocation is stamped with a fresh run identifier, logged at
// start and completion, so a worker's log lines can be correlated with
// its peers' even though no two workers share state beyond the
// Communicator's collectives.
func GeneratePartitionField(comm Communicator, partitioner Partitioner, domains []*meshkit.Node, opts Options) error {
	runID := uuid.New().String()
	log.Printf("partition[%s]: rank %d/%d starting over %d domains", runID, comm.Rank(), comm.Size(), len(domains))

	csrs := make([]*localCSR, len(domains))
	localElemCount := int64(0)
	localVertCount := int64(0)
	for i, d := range domains {
		csr, err := walkDomain(d, opts)
		if err != nil {
			return fmt.Errorf("partition: domain %d: %w", i, err)
		}
		csrs[i] = csr
		localElemCount += int64(len(csr.elementVerts))
		localVertCount += int64(csr.numVertices)
	}

	// Step 1: global numbering. MaxReduce per §6 is the only reduction
	// available; we derive each worker's base index by asking every
	// worker for its own count, then taking the max-reduced vector
	// across a one-hot slice keyed by rank — this lets a single
	// MaxReduce call stand in for an all-gather of per-rank counts.
	elemCounts, err := allCounts(comm, localElemCount)
	if err != nil {
		return fmt.Errorf("partition: element count exchange: %w", err)
	}
	vertCounts, err := allCounts(comm, localVertCount)
	if err != nil {
		return fmt.Errorf("partition: vertex count exchange: %w", err)
	}

	elemBase := exclusivePrefixSum(elemCounts)
	vertBase := exclusivePrefixSum(vertCounts)
	rank := comm.Rank()

	var elementsGlobal [][]int64

	vertCursor := vertBase[rank]
	elemCursor := elemBase[rank]
	for i, csr := range csrs {
		vIDs := make([]int64, csr.numVertices)
		for v := range vIDs {
			vIDs[v] = vertCursor + int64(v)
		}
		vertCursor += int64(csr.numVertices)

		eIDs := make([]int64, len(csr.elementVerts))
		for e := range eIDs {
			eIDs[e] = elemCursor + int64(e)
		}
		elemCursor += int64(len(csr.elementVerts))

		for _, verts := range csr.elementVerts {
			global := make([]int64, len(verts))
			for j, lv := range verts {
				global[j] = vIDs[lv]
			}
			elementsGlobal = append(elementsGlobal, global)
		}

		domains[i].Path(opts.fieldName("global_vertex_ids")).Set(vIDs)
		domains[i].Path(opts.fieldName("global_element_ids")).Set(eIDs)
	}

	// Step 2: input assembly.
	eldist, eptr, eind := eldistEptrEind(elementsGlobal, elemCounts)

	nParts := opts.Partitions
	if nParts <= 0 {
		domainCounts, err := allCounts(comm, int64(len(domains)))
		if err != nil {
			return fmt.Errorf("partition: domain count exchange: %w", err)
		}
		var globalDomains int64
		for _, c := range domainCounts {
			globalDomains += c
		}
		nParts = int(globalDomains)
		if nParts <= 0 {
			nParts = 1
		}
	}
	callOpts := opts
	callOpts.Partitions = nParts
	if callOpts.ParmetisNCommonNodes <= 0 && len(domains) > 0 {
		if _, coordset, err := selectTopology(domains[0], opts.Topology); err == nil {
			callOpts.ParmetisNCommonNodes = coordset.Child("values").NumChildren()
		}
	}

	// Step 3: invocation.
	part, err := partitioner.Partition(eldist, eptr, eind, callOpts)
	if err != nil {
		return fmt.Errorf("partition: partitioner invocation: %w", err)
	}

	// Step 4: writeback, sliced per domain in the same order elements
	// were assembled above.
	cursor := 0
	for i, csr := range csrs {
		n := len(csr.elementVerts)
		domains[i].Path(opts.fieldName("parmetis_result")).Set(part[cursor : cursor+n])
		cursor += n
	}

	log.Printf("partition[%s]: rank %d wrote %d partition assignments across %d partitions", runID, comm.Rank(), cursor, nParts)
	return nil
}

// allCounts turns a single local scalar into the full per-worker vector
// via MaxReduce applied to a one-hot slice: worker r contributes local
// at index r and 0 elsewhere, so the element-wise max across workers
// recovers every worker's count in one collective call.
func allCounts(comm Communicator, local int64) ([]int64, error) {
	size := comm.Size()
	rank := comm.Rank()
	v := make([]int64, size)
	v[rank] = local
	return comm.MaxReduce(v)
}

func exclusivePrefixSum(counts []int64) []int64 {
	out := make([]int64, len(counts)+1)
	for i, c := range counts {
		out[i+1] = out[i] + c
	}
	return out
}

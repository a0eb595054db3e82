package pipeline

// Batch is one unit of work handed to a single worker: a sequence number and
// the kept entry ids, in archive order. Sequence numbers are assigned by the
// scanner, strictly increasing from 1 with no gaps.
type Batch struct {
	Seq uint64
	IDs []uint64
}

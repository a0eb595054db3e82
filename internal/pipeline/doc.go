// Package pipeline implements the extraction pipeline: one scanner feeding
// N writers through a bounded in-memory queue.
//
// # Overview
//
// Data flows strictly one way: archive -> Scanner -> Queue -> workers ->
// artifact files. Control flows back only through blocking on the queue and
// joining at shutdown.
//
//   - Queue is a capacity-limited FIFO of Batch values plus a one-way close
//     signal. Close is a broadcast: every blocked waiter observes it
//     independently, so shutdown never depends on one consumer waking the
//     next. Push and Pop also observe context cancellation for clean early
//     termination.
//   - Scanner walks entries in archive order, applies the keep checks
//     (namespace, redirect, deleted, title pattern, optional CEL filter),
//     accumulates kept ids into fixed-size batches with contiguous sequence
//     numbers from 1, and closes the queue when done — on every exit path,
//     so workers always drain and terminate.
//   - Each worker owns an exclusive archive reader and writes one artifact
//     per batch it dequeues. Batches interleave across workers, so artifacts
//     finish out of sequence order; record order inside an artifact always
//     matches the batch's id order.
//   - Pipeline starts all of the above under one errgroup, joins them, and
//     returns aggregated Stats with the first error. A failing worker
//     cancels the group context, which unblocks everyone.
package pipeline

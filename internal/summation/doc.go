// Package summation implements the array summation strategies compared by
// the benchmark: a sequential loop, a manual fan-out over goroutines that
// merge their partial sums into a mutex-guarded accumulator, a declarative
// parallel reduction, and a lock-free join of per-worker partial sums.
//
// All parallel strategies share the same partitioning policy (see
// Partition): the array is cut into workerCount contiguous chunks of
// len/workerCount elements and the last chunk absorbs the remainder.
package summation

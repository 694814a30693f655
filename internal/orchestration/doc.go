// Package orchestration runs summation strategies over a shared array, times
// each run and checks that every strategy agrees on the total. It decouples
// the benchmark loop from presentation via ProgressReporter and
// ResultPresenter.
package orchestration

package calibration

import (
	"runtime"

	"github.com/agbru/sumbench/internal/config"
)

// GenerateWorkerCandidates returns the worker counts to benchmark: powers of
// two up to twice the number of CPUs, plus NumCPU itself when it is not a
// power of two. The result is sorted and starts at 1.
func GenerateWorkerCandidates() []int {
	return workerCandidates(runtime.NumCPU())
}

func workerCandidates(numCPU int) []int {
	if numCPU < 1 {
		numCPU = 1
	}
	limit := 2 * numCPU
	var out []int
	for w := 1; w <= limit; w *= 2 {
		if w > numCPU && out[len(out)-1] < numCPU {
			out = append(out, numCPU)
		}
		out = append(out, w)
	}
	return out
}

// GenerateQuickWorkerCandidates returns a reduced set for a fast pass:
// 1, NumCPU/2 and NumCPU, without duplicates.
func GenerateQuickWorkerCandidates() []int {
	return quickWorkerCandidates(runtime.NumCPU())
}

func quickWorkerCandidates(numCPU int) []int {
	if numCPU <= 1 {
		return []int{1}
	}
	out := []int{1}
	if half := numCPU / 2; half > 1 {
		out = append(out, half)
	}
	return append(out, numCPU)
}

// EstimateOptimalWorkers delegates to config.EstimateOptimalWorkers.
func EstimateOptimalWorkers() int { return config.EstimateOptimalWorkers() }

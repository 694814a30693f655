package orchestration

import (
	apperrors "github.com/agbru/sumbench/internal/errors"
	"github.com/agbru/sumbench/internal/summation"
)

// AlgoAll selects every registered strategy.
const AlgoAll = "all"

// GetStrategiesToRun resolves algo against the factory. "all" returns every
// registered strategy in key order; any other value must be a registered key.
func GetStrategiesToRun(algo string, factory summation.StrategyFactory) ([]SelectedStrategy, error) {
	if algo == AlgoAll || algo == "" {
		keys := factory.List()
		selected := make([]SelectedStrategy, 0, len(keys))
		for _, k := range keys {
			if s, err := factory.Get(k); err == nil {
				selected = append(selected, SelectedStrategy{Key: k, Strategy: s})
			}
		}
		return selected, nil
	}
	s, err := factory.Get(algo)
	if err != nil {
		return nil, apperrors.WrapError(err, "selecting strategy")
	}
	return []SelectedStrategy{{Key: algo, Strategy: s}}, nil
}

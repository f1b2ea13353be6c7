package calculator

import (
	"fmt"
)

// SplitEvenly divides cost across participants in whole units.
// Shares differ by at most one unit: the remainder goes one unit at a time to
// the first participants, so the shares always sum to cost.
func SplitEvenly(cost int64, participants []string) (map[string]int64, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}

	n := int64(len(participants))
	base := cost / n
	rem := cost % n // carries the sign of cost

	step := int64(1)
	if rem < 0 {
		step = -1
		rem = -rem
	}

	shares := make(map[string]int64, len(participants))
	for i, p := range participants {
		share := base
		if int64(i) < rem {
			share += step
		}
		// A participant listed twice receives both shares.
		shares[p] += share
	}
	return shares, nil
}

package roster

import (
	"sort"

	"github.com/gamedayhq/gameday/internal/domain/sport"
)

// SortBySport reorders a flattened roster in place per the sport's ordering
// rules. The result is a total ordering: every entry appears exactly once.
// Sorting is stable throughout so upstream order breaks remaining ties.
func SortBySport(entries []Entry, strategy sport.Strategy) {
	switch strategy.RosterOrdering {
	case sport.OrderStartersThenBench:
		sortStartersThenBench(entries, strategy)
	case sport.OrderByPosition:
		sortByPosition(entries, strategy)
	default:
		// Passthrough: unknown sports keep the upstream order.
	}
}

// Starters first ordered by position priority; bench behind them ordered by
// descending experience, then position priority.
func sortStartersThenBench(entries []Entry, strategy sport.Strategy) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Starter != b.Starter {
			return a.Starter
		}
		if a.Starter {
			return strategy.Priority(a.Position) < strategy.Priority(b.Position)
		}
		if a.Experience != b.Experience {
			return a.Experience > b.Experience
		}
		return strategy.Priority(a.Position) < strategy.Priority(b.Position)
	})
}

// Single list ordered by position priority, ties broken by descending
// experience.
func sortByPosition(entries []Entry, strategy sport.Strategy) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		pa, pb := strategy.Priority(a.Position), strategy.Priority(b.Position)
		if pa != pb {
			return pa < pb
		}
		return a.Experience > b.Experience
	})
}

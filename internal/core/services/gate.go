package services

import "github.com/custodia-labs/cliprelay/internal/core/domain"

// ExceedsThreshold reports whether the summed size of the item's formats
// reaches limit. It stops querying formats as soon as the running total
// reaches the limit. An item with no formats never exceeds.
func ExceedsThreshold(src domain.FormatSource, limit int) bool {
	exceeds, _ := measure(src, limit)
	return exceeds
}

// measure is ExceedsThreshold that also returns the bytes counted
// before stopping.
func measure(src domain.FormatSource, limit int) (bool, int) {
	if src == nil {
		return false, 0
	}

	total := 0
	for _, f := range src.Formats() {
		total += len(src.Data(f))
		if total >= limit {
			return true, total
		}
	}
	return false, total
}

// Package cart partitions a customer's cart snapshot into per-seller groups,
// the unit of checkout in the marketplace.
package cart

import "agora/internal/model"

// GroupBySeller partitions cart lines into disjoint seller groups. Groups are
// returned in first-appearance order so repeated calls over the same snapshot
// iterate identically. Lines with an empty seller id cannot be checked out
// through this path; they are returned as skipped rather than silently
// dropped. When sellerFilter is non-empty only that seller's lines are
// grouped.
//
// The function is a pure transformation over the snapshot passed in.
func GroupBySeller(lines []model.CartLine, sellerFilter string) ([]model.SellerGroup, []model.CartLine) {
	var groups []model.SellerGroup
	var skipped []model.CartLine
	index := make(map[string]int, len(lines))

	for _, line := range lines {
		if line.SellerID == "" {
			skipped = append(skipped, line)
			continue
		}
		if sellerFilter != "" && line.SellerID != sellerFilter {
			continue
		}

		i, ok := index[line.SellerID]
		if !ok {
			i = len(groups)
			index[line.SellerID] = i
			groups = append(groups, model.SellerGroup{SellerID: line.SellerID})
		}
		groups[i].Lines = append(groups[i].Lines, line)
	}

	return groups, skipped
}

// Flatten collects the cart lines contained in the given groups, in group
// iteration order.
func Flatten(groups []model.SellerGroup) []model.CartLine {
	var lines []model.CartLine
	for _, g := range groups {
		lines = append(lines, g.Lines...)
	}
	return lines
}

package bidi

// Reorder returns the visual order of a row of items with the given
// embedding levels, as visual→logical indices: the item drawn at visual
// position i is levels[order[i]]'s item.
//
// This is rule L2: from the highest level down to the lowest odd level,
// every maximal subsequence of items at that level or higher is reversed.
// It applies equally to the runs of one line and to the clusters within a
// run, which is how the line breaker uses it.
func Reorder(levels []uint8) []int {
	order := make([]int, len(levels))
	return ReorderInto(levels, order)
}

// ReorderInto is Reorder writing into a caller-owned slice, which must have
// len(levels) entries. It returns order.
func ReorderInto(levels []uint8, order []int) []int {
	for i := range order {
		order[i] = i
	}
	if len(levels) < 2 {
		return order
	}

	var highest uint8
	lowestOdd := uint8(MaxDepth + 2)
	for _, l := range levels {
		if l > highest {
			highest = l
		}
		if l&1 == 1 && l < lowestOdd {
			lowestOdd = l
		}
	}
	if lowestOdd > highest {
		// Nothing right-to-left; logical order is visual order.
		return order
	}

	for level := highest; level >= lowestOdd; level-- {
		for i := 0; i < len(order); i++ {
			if levels[order[i]] < level {
				continue
			}
			j := i
			for j < len(order) && levels[order[j]] >= level {
				j++
			}
			reverseInts(order[i:j])
			i = j
		}
	}
	return order
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

package domain

// Locate maps a scroll offset to the active section index.
//
// tops holds each section's top offset in document order, read from the
// live layout by the caller. partialHeight is a look-ahead bias
// (typically half the viewport height) so the section occupying the
// upper-center of the viewport wins rather than the one at the exact
// top edge.
//
// offsetY == 0 always resolves to the first section. Otherwise the scan
// runs back-to-front and the highest-index section whose top is
// strictly below offsetY+partialHeight wins; with no candidate the
// first section is returned.
func Locate(tops []int, offsetY, partialHeight int) int {
	if offsetY == 0 {
		return 0
	}
	effective := offsetY + partialHeight
	for i := len(tops) - 1; i >= 0; i-- {
		if tops[i] < effective {
			return i
		}
	}
	return 0
}

package app

// DefaultSwipeThreshold is the horizontal distance a drag must exceed to
// change slides.
const DefaultSwipeThreshold = 50

// Navigator tracks the current slide of a deck. Moves are clamped to
// [0, Len-1]; requests outside that range leave Index unchanged.
type Navigator struct {
	Len       int
	Index     int
	Threshold int
}

// NewNavigator returns a navigator over n slides positioned on the first.
// A threshold below 1 selects DefaultSwipeThreshold.
func NewNavigator(n, threshold int) Navigator {
	if threshold < 1 {
		threshold = DefaultSwipeThreshold
	}
	return Navigator{Len: max(n, 0), Threshold: threshold}
}

// Next moves forward one slide. It reports whether the index changed.
func (n *Navigator) Next() bool {
	return n.Goto(n.Index + 1)
}

// Prev moves back one slide. It reports whether the index changed.
func (n *Navigator) Prev() bool {
	return n.Goto(n.Index - 1)
}

// Goto jumps to slide i. It reports whether the index changed.
func (n *Navigator) Goto(i int) bool {
	if i < 0 || i >= n.Len || i == n.Index {
		return false
	}
	n.Index = i
	return true
}

// Swipe interprets a horizontal drag from startX to endX. Dragging left
// past the threshold advances, dragging right goes back.
func (n *Navigator) Swipe(startX, endX int) bool {
	threshold := n.Threshold
	if threshold < 1 {
		threshold = DefaultSwipeThreshold
	}
	switch {
	case endX < startX-threshold:
		return n.Next()
	case endX > startX+threshold:
		return n.Prev()
	}
	return false
}

// First reports whether the first slide is shown.
func (n Navigator) First() bool { return n.Index == 0 }

// Last reports whether the last slide is shown.
func (n Navigator) Last() bool { return n.Len > 0 && n.Index == n.Len-1 }

package logic

// Navigator handles selection and viewport management for a flat list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	itemCount      int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 1}
}

// Reset replaces the list with one of count items and selects the first
func (n *Navigator) Reset(count int) {
	n.itemCount = count
	n.selectedIndex = 0
	n.viewportOffset = 0
}

// SetViewportHeight sets how many rows are visible and keeps the selection on screen
func (n *Navigator) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.ensureSelectedVisible()
}

// GetSelectedIndex returns the current selected index
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the current viewport offset
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// Move shifts the selection by delta, clamped to the list
func (n *Navigator) Move(delta int) {
	n.SetSelectedIndex(n.selectedIndex + delta)
}

// PageUp moves the selection up by one viewport
func (n *Navigator) PageUp() {
	n.Move(-n.viewportHeight)
}

// PageDown moves the selection down by one viewport
func (n *Navigator) PageDown() {
	n.Move(n.viewportHeight)
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	if n.itemCount == 0 {
		return 0, 0
	}
	if index < 0 {
		index = 0
	}
	if index > n.itemCount-1 {
		index = n.itemCount - 1
	}
	n.selectedIndex = index
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// ensureSelectedVisible adjusts the viewport to keep the selected item visible
func (n *Navigator) ensureSelectedVisible() {
	// If selected item is above viewport, scroll up
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}

	// If selected item is below viewport, scroll down
	if n.selectedIndex >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.selectedIndex - n.viewportHeight + 1
	}

	// The viewport never starts past the point where it could still be filled
	maxOffset := n.itemCount - n.viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}

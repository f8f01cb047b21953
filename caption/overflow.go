package caption

// ShouldCollapse reports whether rendered content no longer fits its
// container. Strictly greater: content exactly filling the container
// still fits. Widths come from the display layer's measurement; the
// policy itself measures nothing.
func ShouldCollapse(contentWidth, containerWidth int) bool {
	return contentWidth > containerWidth
}

package outline

// PointIndex is a packed handle into an Outline: a 12-bit contour
// index and a 20-bit point index within that contour
// Ordering is first by contour, then by point, which falls out of
// plain numeric comparison since the contour occupies the high bits.
type PointIndex uint32

const pointIndexBits = 20
const pointIndexMask = (1 << pointIndexBits) - 1

// MakePointIndex packs a contour/point pair. Callers are expected to
// have already validated both indices fit (outline.MoveTo/push* return
// CapacityExceeded before this would overflow).
func MakePointIndex(contourIdx, pointIdx int) PointIndex {
	return PointIndex(uint32(contourIdx)<<pointIndexBits | uint32(pointIdx)&pointIndexMask)
}

// Contour returns the contour index component.
func (p PointIndex) Contour() int {
	return int(uint32(p) >> pointIndexBits)
}

// Point returns the point index component within its contour.
func (p PointIndex) Point() int {
	return int(uint32(p) & pointIndexMask)
}

// Less implements the (contour, point) ascending ordering used when
// PointIndex values are compared directly as priority-queue keys.
func (p PointIndex) Less(q PointIndex) bool {
	return p < q
}

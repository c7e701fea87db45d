package mix

// EncodeMidSide converts left/right in place to mid/side:
// mid = (l+r)/2, side = (l-r)/2.
func EncodeMidSide(left, right []float64) {
	n := min(len(left), len(right))
	for i := range n {
		l, r := left[i], right[i]
		left[i] = 0.5 * (l + r)
		right[i] = 0.5 * (l - r)
	}
}

// DecodeMidSide converts mid/side in place back to left/right.
func DecodeMidSide(mid, side []float64) {
	n := min(len(mid), len(side))
	for i := range n {
		m, s := mid[i], side[i]
		mid[i] = m + s
		side[i] = m - s
	}
}

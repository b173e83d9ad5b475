package core

// MovingAverageFilter smooths raw sense readings over FilterDepth samples.
//
// Push reports the average of the nine oldest retained samples plus the
// incoming one; the sample that was newest before the call is kept but
// left out of that average. The firmware has always regulated on this
// lagging average and the loop is tuned for it, so it is kept as is.
type MovingAverageFilter struct {
	buf  [FilterDepth]ADCValue
	head int    // index of the oldest sample
	sum  uint32 // sum of all FilterDepth slots
}

// NewMovingAverageFilter returns a filter whose oldest slot holds seed
// and whose other slots are zero
func NewMovingAverageFilter(seed ADCValue) *MovingAverageFilter {
	f := &MovingAverageFilter{}
	f.Reset(seed)
	return f
}

// Reset restores the startup contents
func (f *MovingAverageFilter) Reset(seed ADCValue) {
	f.buf = [FilterDepth]ADCValue{seed}
	f.head = 0
	f.sum = uint32(seed)
}

// Push adds a sample and returns the smoothed estimate
func (f *MovingAverageFilter) Push(v ADCValue) ADCValue {
	newest := f.buf[(f.head+FilterDepth-1)%FilterDepth]
	avg := (f.sum - uint32(newest) + uint32(v)) / FilterDepth

	f.sum = f.sum - uint32(f.buf[f.head]) + uint32(v)
	f.buf[f.head] = v
	f.head = (f.head + 1) % FilterDepth

	return ADCValue(avg)
}

// Len returns the number of retained samples, always FilterDepth
func (f *MovingAverageFilter) Len() int {
	return len(f.buf)
}

// Samples returns the retained samples, oldest first
func (f *MovingAverageFilter) Samples() [FilterDepth]ADCValue {
	var out [FilterDepth]ADCValue
	for i := range out {
		out[i] = f.buf[(f.head+i)%FilterDepth]
	}
	return out
}

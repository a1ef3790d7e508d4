package anim

// splitmix64 finalizer; stable across platforms and runs.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

func unit(x uint64) float64 {
	return float64(x>>11) / (1 << 53)
}

// Random returns a value in [0, 1) that depends only on seed.
func Random(seed int) float64 {
	return unit(mix(uint64(seed)))
}

// Noise returns a value in [0, 1) that depends only on (frame, index), for
// decorative per-frame jitter.
func Noise(frame, index int) float64 {
	return unit(mix(mix(uint64(frame)) ^ uint64(index)))
}

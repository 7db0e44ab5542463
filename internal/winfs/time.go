package winfs

const (
	// epochDelta100ns is the count of 100-nanosecond ticks between the
	// native epoch (January 1, 1601) and the Unix epoch (January 1, 1970):
	// 11644473600 seconds.
	epochDelta100ns = 11644473600 * ticksPerSecond

	// ticksPerSecond is the count of 100-nanosecond ticks per second.
	ticksPerSecond = 10000000
)

// filetimeToUnix converts a [Filetime] to Unix epoch seconds, truncating any
// sub-second remainder. The all-zero sentinel converts to 0 and must be
// checked before the epoch shift, which would otherwise alias it to a real
// timestamp.
func filetimeToUnix(ft Filetime) int64 {
	ticks := uint64(ft.HighDateTime)<<32 | uint64(ft.LowDateTime)
	if ticks == 0 {
		return 0
	}

	return (int64(ticks) - epochDelta100ns) / ticksPerSecond
}

package bitvideo

const maxUint16 = int(^uint16(0))

// u16FromInt converts an int to a uint16.
func u16FromInt(n int) (uint16, error) {
	if n < 0 || n > maxUint16 {
		return 0, ErrFrameTooLarge
	}

	// #nosec G115 -- bounds checked above.
	return uint16(n), nil
}

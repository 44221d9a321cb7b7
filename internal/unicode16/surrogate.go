package unicode16

// IsHighSurrogate reports whether u is the leading half of a surrogate pair.
func IsHighSurrogate(u uint16) bool { return isHighSurrogate(u) }

// IsLowSurrogate reports whether u is the trailing half of a surrogate pair.
func IsLowSurrogate(u uint16) bool { return isLowSurrogate(u) }

package unicode16

// endChunkIndex is the end-of-iteration sentinel for CodepointIterator's
// chunk index, mirroring the UINT32_MAX convention used for row/column
// sentinels elsewhere in this package.
const endChunkIndex = ^uint32(0)

// CodepointIterator is a bidirectional iterator over a flat sequence of
// TextSlice chunks, dereferencing to 32-bit Unicode code points rather
// than raw UTF-16 code units. It is grounded on the same stepping idiom as
// a reverse rune iterator over UTF-8 bytes, generalized to detect
// surrogate pairs instead of UTF-8 continuation bytes.
type CodepointIterator struct {
	chunks     []TextSlice
	chunkIndex uint32
	unitOffset uint32 // offset of the current code unit within chunks[chunkIndex]
	started    bool
}

// NewCodepointIterator returns an iterator positioned before the first
// chunk. Next must be called to reach the first code point.
func NewCodepointIterator(chunks []TextSlice) *CodepointIterator {
	return &CodepointIterator{chunks: chunks}
}

// NewCodepointIteratorAtEnd returns an iterator positioned after the last
// chunk. Prev must be called to reach the last code point.
func NewCodepointIteratorAtEnd(chunks []TextSlice) *CodepointIterator {
	it := &CodepointIterator{chunks: chunks, started: true, chunkIndex: endChunkIndex}
	return it
}

// AtEnd reports whether the iterator has no current code point.
func (it *CodepointIterator) AtEnd() bool {
	return it.chunkIndex == endChunkIndex
}

// Equal compares two iterators by position, per the (chunk_index,
// chunk_iterator) equality contract.
func (it *CodepointIterator) Equal(other *CodepointIterator) bool {
	return it.chunkIndex == other.chunkIndex && it.unitOffset == other.unitOffset
}

func (it *CodepointIterator) unitAt(chunkIdx, unitIdx uint32) (uint16, bool) {
	if chunkIdx >= uint32(len(it.chunks)) {
		return 0, false
	}
	c := it.chunks[chunkIdx]
	if unitIdx >= c.Size() {
		return 0, false
	}
	return c.At(unitIdx), true
}

// Next advances one code point forward. Returns false if already at the
// end.
func (it *CodepointIterator) Next() bool {
	if !it.started {
		it.started = true
		if len(it.chunks) == 0 {
			it.chunkIndex = endChunkIndex
			return false
		}
		it.chunkIndex = 0
		it.unitOffset = 0
		_, ok := it.unitAt(0, 0)
		if !ok {
			it.chunkIndex = endChunkIndex
		}
		return !it.AtEnd()
	}

	if it.AtEnd() {
		return false
	}

	hi, _ := it.unitAt(it.chunkIndex, it.unitOffset)
	it.advanceOneUnit()
	if isHighSurrogate(hi) {
		if lo, ok := it.unitAt(it.chunkIndex, it.unitOffset); ok && isLowSurrogate(lo) {
			it.advanceOneUnit()
		}
	}
	return !it.AtEnd()
}

func (it *CodepointIterator) advanceOneUnit() {
	it.unitOffset++
	for it.chunkIndex < uint32(len(it.chunks)) && it.unitOffset >= it.chunks[it.chunkIndex].Size() {
		it.chunkIndex++
		it.unitOffset = 0
	}
	if it.chunkIndex >= uint32(len(it.chunks)) {
		it.chunkIndex = endChunkIndex
	}
}

// Prev retreats one code point backward. Returns false if already at the
// start.
func (it *CodepointIterator) Prev() bool {
	if it.chunkIndex == endChunkIndex {
		if len(it.chunks) == 0 {
			return false
		}
		it.chunkIndex = uint32(len(it.chunks)) - 1
		it.unitOffset = it.chunks[it.chunkIndex].Size()
	}

	if !it.retreatOneUnit() {
		it.chunkIndex = endChunkIndex
		return false
	}

	lo, _ := it.unitAt(it.chunkIndex, it.unitOffset)
	if isLowSurrogate(lo) {
		save := *it
		if it.retreatOneUnit() {
			if hi, ok := it.unitAt(it.chunkIndex, it.unitOffset); !ok || !isHighSurrogate(hi) {
				*it = save
			}
		} else {
			*it = save
		}
	}
	return true
}

func (it *CodepointIterator) retreatOneUnit() bool {
	for {
		if it.unitOffset > 0 {
			it.unitOffset--
			return true
		}
		if it.chunkIndex == 0 {
			return false
		}
		it.chunkIndex--
		it.unitOffset = it.chunks[it.chunkIndex].Size()
	}
}

// Codepoint dereferences the iterator. At a high surrogate followed by a
// low surrogate it combines the pair into a single code point above
// U+FFFF; otherwise it returns the raw code unit.
func (it *CodepointIterator) Codepoint() rune {
	if it.AtEnd() {
		return 0
	}
	hi, _ := it.unitAt(it.chunkIndex, it.unitOffset)
	if isHighSurrogate(hi) {
		if lo, ok := it.unitAt(it.chunkIndex, it.unitOffset+1); ok && isLowSurrogate(lo) {
			return rune((uint32(hi)&0x3ff)<<10|(uint32(lo)&0x3ff)) + 0x10000
		}
		// surrogate straddling a chunk boundary
		if nextHi, ok := it.unitAt(it.chunkIndex+1, 0); it.unitOffset+1 >= it.chunks[it.chunkIndex].Size() && ok && isLowSurrogate(nextHi) {
			return rune((uint32(hi)&0x3ff)<<10|(uint32(nextHi)&0x3ff)) + 0x10000
		}
	}
	return rune(hi)
}

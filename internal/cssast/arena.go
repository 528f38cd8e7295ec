// Package cssast implements the columnar arena that backs the parsed CSS
// tree (spec.md §3.2, §4.3) and the read-only node view projected over it
// (spec.md §3.4, §4.11).
//
// Every node is a fixed-width record packed into one contiguous byte
// buffer; links between nodes are 32-bit indices into that buffer, never
// pointers. This is deliberate: the tree becomes a flat first-child/
// next-sibling forest with no reference-counted or cyclic graph, trivially
// copyable and relocatable on regrow (spec.md §9).
package cssast

import "encoding/binary"

// recordSize is the fixed width of one arena record in bytes (spec.md §3.2).
const recordSize = 40

// Record field byte offsets, little-endian, matching spec.md §3.2 exactly.
const (
	offKind          = 0
	offFlags         = 1
	offAttrOp        = 2
	offAttrFlags     = 3
	offStartOffset   = 4
	offLength        = 8
	offContentDelta  = 12
	offContentLength = 14
	offValueDelta    = 16
	offValueLength   = 18
	offFirstChild    = 20
	offLastChild     = 24
	offNextSibling   = 28
	offStartLine     = 32
	offStartColumn   = 36
)

const maxSlice = 65535

// NullIndex is the sentinel denoting "no node"; record index 0 is reserved
// and never allocated (spec.md §3.2).
const NullIndex uint32 = 0

// Arena is a bump allocator over one contiguous byte buffer of fixed-width
// node records. It is owned by exactly one parse call and is not
// thread-safe (spec.md §5).
type Arena struct {
	buf      []byte
	count    uint32 // number of allocated records, not counting the null sentinel
	capacity uint32 // capacity in records
}

// NewArena sizes the initial buffer from the expected source length, per
// the recommended heuristic in spec.md §4.3: ceil(sourceBytes/1024*60*1.15),
// floored at 16 records.
func NewArena(sourceBytes int) *Arena {
	cap := uint32(float64(sourceBytes)/1024*60*1.15) + 1
	if cap < 16 {
		cap = 16
	}
	return &Arena{
		buf:      make([]byte, (cap+1)*recordSize),
		capacity: cap,
	}
}

// Len returns the number of allocated (non-sentinel) records.
func (a *Arena) Len() uint32 { return a.count }

func (a *Arena) grow() {
	newCap := uint32(float64(a.capacity)*1.3) + 1
	if newCap <= a.capacity {
		newCap = a.capacity + 1
	}
	newBuf := make([]byte, (newCap+1)*recordSize)
	copy(newBuf, a.buf)
	a.buf = newBuf
	a.capacity = newCap
}

func (a *Arena) record(idx uint32) []byte {
	start := idx * recordSize
	return a.buf[start : start+recordSize]
}

// CreateNode allocates a new record and returns its 1-based index. Link and
// auxiliary fields are zero-initialized (spec.md §4.3). Length defaults to
// zero; call SetLength once the node's closing token is consumed.
func (a *Arena) CreateNode(kind Kind, startOffset, line, column int) uint32 {
	if a.count >= a.capacity {
		a.grow()
	}
	a.count++
	idx := a.count
	r := a.record(idx)
	r[offKind] = byte(kind)
	binary.LittleEndian.PutUint32(r[offStartOffset:], uint32(startOffset))
	binary.LittleEndian.PutUint32(r[offStartLine:], uint32(line))
	binary.LittleEndian.PutUint16(r[offStartColumn:], uint16(column))
	return idx
}

// AppendChild links child as the newest child of parent in O(1) via the
// last-child pointer (spec.md §4.3).
func (a *Arena) AppendChild(parent, child uint32) {
	p := a.record(parent)
	if binary.LittleEndian.Uint32(p[offFirstChild:]) == 0 {
		binary.LittleEndian.PutUint32(p[offFirstChild:], child)
		binary.LittleEndian.PutUint32(p[offLastChild:], child)
		return
	}
	last := binary.LittleEndian.Uint32(p[offLastChild:])
	lastRec := a.record(last)
	binary.LittleEndian.PutUint32(lastRec[offNextSibling:], child)
	binary.LittleEndian.PutUint32(p[offLastChild:], child)
}

// AppendChildren is the bulk variant of AppendChild.
func (a *Arena) AppendChildren(parent uint32, children []uint32) {
	for _, c := range children {
		a.AppendChild(parent, c)
	}
}

// SetLength back-fills a node's byte length once its closing token has been
// consumed. Lengths beyond 65535 are clamped and flagged as overflowing
// (spec.md §4.3); the tree remains walkable, just truncated in that report.
func (a *Arena) SetLength(idx uint32, length int) {
	r := a.record(idx)
	if length > maxSlice {
		length = maxSlice
		r[offFlags] |= byte(FlagLengthOverflow)
	}
	binary.LittleEndian.PutUint16(r[offLength:], uint16(length))
}

// SetContentSlice records the "name" slice (property name, at-rule name,
// pseudo name, class name, ...) as a delta+length relative to start-offset.
func (a *Arena) SetContentSlice(idx uint32, delta, length int) {
	r := a.record(idx)
	delta, length, overflow := clampSlice(delta, length)
	binary.LittleEndian.PutUint16(r[offContentDelta:], uint16(delta))
	binary.LittleEndian.PutUint16(r[offContentLength:], uint16(length))
	if overflow {
		r[offFlags] |= byte(FlagLengthOverflow)
	}
}

// SetValueSlice records the "value/prelude" slice the same way.
func (a *Arena) SetValueSlice(idx uint32, delta, length int) {
	r := a.record(idx)
	delta, length, overflow := clampSlice(delta, length)
	binary.LittleEndian.PutUint16(r[offValueDelta:], uint16(delta))
	binary.LittleEndian.PutUint16(r[offValueLength:], uint16(length))
	if overflow {
		r[offFlags] |= byte(FlagLengthOverflow)
	}
}

func clampSlice(delta, length int) (int, int, bool) {
	if delta > maxSlice {
		return maxSlice, 0, true
	}
	if delta+length > maxSlice {
		return delta, maxSlice - delta, true
	}
	return delta, length, false
}

func (a *Arena) SetFlag(idx uint32, flag Flag) {
	a.record(idx)[offFlags] |= byte(flag)
}

func (a *Arena) HasFlag(idx uint32, flag Flag) bool {
	return a.record(idx)[offFlags]&byte(flag) != 0
}

func (a *Arena) SetAttrOp(idx uint32, op AttrOp) {
	a.record(idx)[offAttrOp] = byte(op)
}

func (a *Arena) SetAttrFlags(idx uint32, flags AttrFlags) {
	a.record(idx)[offAttrFlags] = byte(flags)
}

func (a *Arena) Kind(idx uint32) Kind { return Kind(a.record(idx)[offKind]) }
func (a *Arena) Flags(idx uint32) Flag {
	return Flag(a.record(idx)[offFlags])
}
func (a *Arena) AttrOp(idx uint32) AttrOp       { return AttrOp(a.record(idx)[offAttrOp]) }
func (a *Arena) AttrFlags(idx uint32) AttrFlags { return AttrFlags(a.record(idx)[offAttrFlags]) }

func (a *Arena) StartOffset(idx uint32) int {
	return int(binary.LittleEndian.Uint32(a.record(idx)[offStartOffset:]))
}
func (a *Arena) Length(idx uint32) int {
	return int(binary.LittleEndian.Uint16(a.record(idx)[offLength:]))
}
func (a *Arena) ContentDelta(idx uint32) int {
	return int(binary.LittleEndian.Uint16(a.record(idx)[offContentDelta:]))
}
func (a *Arena) ContentLength(idx uint32) int {
	return int(binary.LittleEndian.Uint16(a.record(idx)[offContentLength:]))
}
func (a *Arena) ValueDelta(idx uint32) int {
	return int(binary.LittleEndian.Uint16(a.record(idx)[offValueDelta:]))
}
func (a *Arena) ValueLength(idx uint32) int {
	return int(binary.LittleEndian.Uint16(a.record(idx)[offValueLength:]))
}
func (a *Arena) FirstChild(idx uint32) uint32 {
	return binary.LittleEndian.Uint32(a.record(idx)[offFirstChild:])
}
func (a *Arena) LastChild(idx uint32) uint32 {
	return binary.LittleEndian.Uint32(a.record(idx)[offLastChild:])
}
func (a *Arena) NextSibling(idx uint32) uint32 {
	return binary.LittleEndian.Uint32(a.record(idx)[offNextSibling:])
}
func (a *Arena) StartLine(idx uint32) int {
	return int(binary.LittleEndian.Uint32(a.record(idx)[offStartLine:]))
}
func (a *Arena) StartColumn(idx uint32) int {
	return int(binary.LittleEndian.Uint16(a.record(idx)[offStartColumn:]))
}

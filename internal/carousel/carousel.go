// Package carousel implements wrap-around index arithmetic shared by the
// reviews carousel, the paper viewer and the gallery viewer.
package carousel

// Direction records which way the last move went.
type Direction int

const (
	None Direction = iota
	Forward
	Backward
)

// String returns the query-string form of d.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "next"
	case Backward:
		return "prev"
	default:
		return ""
	}
}

// ParseDirection maps the query-string form back to a Direction.
func ParseDirection(value string) Direction {
	switch value {
	case "next":
		return Forward
	case "prev":
		return Backward
	default:
		return None
	}
}

// Ring is a current index into a fixed-length ordered list.
//
// The zero value is an empty ring. Rings are values; every move returns a new
// Ring and leaves the receiver untouched.
type Ring struct {
	length    int
	index     int
	direction Direction
}

// New returns a ring over length items positioned at index.
// Out-of-range indexes wrap, so -1 lands on the last item.
func New(length, index int) Ring {
	if length <= 0 {
		return Ring{}
	}
	return Ring{length: length, index: wrap(index, length)}
}

// Len returns the list length.
func (r Ring) Len() int { return r.length }

// Index returns the current position.
func (r Ring) Index() int { return r.index }

// Direction returns the direction of the move that produced r.
func (r Ring) Direction() Direction { return r.direction }

// Empty reports whether the ring has no items.
func (r Ring) Empty() bool { return r.length == 0 }

// Next moves forward by one.
func (r Ring) Next() Ring { return r.Step(1) }

// Prev moves backward by one.
func (r Ring) Prev() Ring { return r.Step(-1) }

// Step moves by n positions; negative n moves backward.
func (r Ring) Step(n int) Ring {
	if r.length == 0 {
		return r
	}
	out := Ring{length: r.length, index: wrap(r.index+n, r.length)}
	switch {
	case n > 0:
		out.direction = Forward
	case n < 0:
		out.direction = Backward
	}
	return out
}

// GoTo jumps to i. The direction is Forward when i is past the current
// index, Backward when before it and None when equal.
func (r Ring) GoTo(i int) Ring {
	if r.length == 0 {
		return r
	}
	target := wrap(i, r.length)
	out := Ring{length: r.length, index: target}
	switch {
	case target > r.index:
		out.direction = Forward
	case target < r.index:
		out.direction = Backward
	}
	return out
}

// NextPage advances by a full window of size items.
func (r Ring) NextPage(size int) Ring { return r.Step(r.clamp(size)) }

// PrevPage steps back by a full window of size items.
func (r Ring) PrevPage(size int) Ring { return r.Step(-r.clamp(size)) }

// Window returns size consecutive indexes starting at the current index.
// size is clamped to [1, Len]; an empty ring yields nil.
func (r Ring) Window(size int) []int {
	if r.length == 0 {
		return nil
	}
	size = r.clamp(size)
	out := make([]int, size)
	for i := range out {
		out[i] = (r.index + i) % r.length
	}
	return out
}

func (r Ring) clamp(size int) int {
	if size < 1 {
		size = 1
	}
	if size > r.length {
		size = r.length
	}
	return size
}

func wrap(i, length int) int {
	i %= length
	if i < 0 {
		i += length
	}
	return i
}

package board

import (
	"fmt"
	"strings"
)

// Board sizes are limited to the four tournament variants.
const (
	MinSize = 6
	MaxSize = 12

	maxBits   = MaxSize * MaxSize
	wordCount = (maxBits + 63) / 64
)

// Sizes lists the legal board sizes.
var Sizes = [...]int{6, 8, 10, 12}

// ValidSize reports whether n is a legal board size.
func ValidSize(n int) bool {
	for _, s := range Sizes {
		if s == n {
			return true
		}
	}
	return false
}

// words is a little-endian multi-word bit set wide enough for the
// largest board (12x12 = 144 bits). It is a value type; all operations
// return new values.
type words [wordCount]uint64

func (w words) and(o words) words {
	var r words
	for i := range w {
		r[i] = w[i] & o[i]
	}
	return r
}

func (w words) or(o words) words {
	var r words
	for i := range w {
		r[i] = w[i] | o[i]
	}
	return r
}

func (w words) xor(o words) words {
	var r words
	for i := range w {
		r[i] = w[i] ^ o[i]
	}
	return r
}

func (w words) andNot(o words) words {
	var r words
	for i := range w {
		r[i] = w[i] &^ o[i]
	}
	return r
}

func (w words) isZero() bool {
	for _, x := range w {
		if x != 0 {
			return false
		}
	}
	return true
}

// shl shifts the whole bit set left by n bits. n must be in (0, 64),
// which covers every directional shift on a 12x12 board (at most 13).
func (w words) shl(n uint) words {
	var r words
	r[0] = w[0] << n
	for i := 1; i < wordCount; i++ {
		r[i] = w[i]<<n | w[i-1]>>(64-n)
	}
	return r
}

// shr shifts the whole bit set right by n bits. n must be in (0, 64).
func (w words) shr(n uint) words {
	var r words
	for i := 0; i < wordCount-1; i++ {
		r[i] = w[i]>>n | w[i+1]<<(64-n)
	}
	r[wordCount-1] = w[wordCount-1] >> n
	return r
}

func (w *words) setBit(idx int) {
	w[idx/64] |= 1 << (idx % 64)
}

func (w *words) clearBit(idx int) {
	w[idx/64] &^= 1 << (idx % 64)
}

func (w words) testBit(idx int) bool {
	return w[idx/64]&(1<<(idx%64)) != 0
}

// popcount64 counts the set bits of a single 64-bit chunk using the
// classical SWAR reduction: masked pairwise sums at 1, 2, 4, 8, 16 and
// 32 bit granularities.
func popcount64(x uint64) uint64 {
	x = (x & 0x5555555555555555) + ((x >> 1) & 0x5555555555555555)
	x = (x & 0x3333333333333333) + ((x >> 2) & 0x3333333333333333)
	x = (x & 0x0F0F0F0F0F0F0F0F) + ((x >> 4) & 0x0F0F0F0F0F0F0F0F)
	x = (x & 0x00FF00FF00FF00FF) + ((x >> 8) & 0x00FF00FF00FF00FF)
	x = (x & 0x0000FFFF0000FFFF) + ((x >> 16) & 0x0000FFFF0000FFFF)
	x = (x & 0x00000000FFFFFFFF) + ((x >> 32) & 0x00000000FFFFFFFF)
	return x
}

// popcount sums the chunk counts, so it never assumes the full bit
// width fits a machine word.
func (w words) popcount() int {
	var sum uint64
	for _, x := range w {
		sum += popcount64(x)
	}
	return int(sum)
}

// Direction is one of the 8 compass directions a bit can slide toward.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

// Directions enumerates all 8 compass directions.
var Directions = [...]Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}

// MaskSet holds the per-size structural masks shared by every bitboard
// of that size. Full covers all size*size cells; West and East exclude
// the leftmost and rightmost column of every row, so that horizontal
// shift components can never wrap between rows. A MaskSet is never
// mutated after creation.
type MaskSet struct {
	Full words
	West words
	East words
}

func newMaskSet(size int) *MaskSet {
	m := &MaskSet{}
	for i := 0; i < size*size; i++ {
		m.Full.setBit(i)
		if i%size != 0 {
			m.West.setBit(i)
		}
		if i%size != size-1 {
			m.East.setBit(i)
		}
	}
	return m
}

// MaskRegistry maps board sizes to their precomputed mask sets. It is
// built once and read-only afterwards; every Bitboard of a given size
// shares the same MaskSet pointer.
type MaskRegistry struct {
	sets map[int]*MaskSet
}

// NewMaskRegistry computes the mask sets for every legal board size.
func NewMaskRegistry() *MaskRegistry {
	r := &MaskRegistry{sets: make(map[int]*MaskSet, len(Sizes))}
	for _, size := range Sizes {
		r.sets[size] = newMaskSet(size)
	}
	return r
}

// Get returns the mask set for the given size.
func (r *MaskRegistry) Get(size int) (*MaskSet, error) {
	m, ok := r.sets[size]
	if !ok {
		return nil, &IllegalBoardSizeError{Size: size}
	}
	return m, nil
}

// registry is the process-wide mask registry, built at startup and
// shared by reference with every Bitboard.
var registry = NewMaskRegistry()

// Bitboard stores the presence or absence of discs on a square board
// as one bit per cell, row-major with x varying fastest. It is a cheap
// value type; the masks are shared read-only references.
type Bitboard struct {
	size  int
	bits  words
	masks *MaskSet
}

// NewBitboard creates an empty bitboard of the given size.
func NewBitboard(size int) (Bitboard, error) {
	m, err := registry.Get(size)
	if err != nil {
		return Bitboard{}, err
	}
	return Bitboard{size: size, masks: m}, nil
}

// newBitboard builds a bitboard for a size already known to be legal.
func newBitboard(size int, bits words) Bitboard {
	m := registry.sets[size]
	return Bitboard{size: size, bits: bits.and(m.Full), masks: m}
}

// Size returns the board side length.
func (b Bitboard) Size() int {
	return b.size
}

func (b Bitboard) bitIndex(x, y int) (int, error) {
	idx := y*b.size + x
	if idx < 0 || idx >= b.size*b.size {
		return 0, fmt.Errorf("%w: index %d on a %dx%d board", ErrOutOfBounds, idx, b.size, b.size)
	}
	return idx, nil
}

// Set sets or clears the bit at (x, y).
func (b *Bitboard) Set(x, y int, value bool) error {
	idx, err := b.bitIndex(x, y)
	if err != nil {
		return err
	}
	if value {
		b.bits.setBit(idx)
	} else {
		b.bits.clearBit(idx)
	}
	return nil
}

// Get returns whether the bit at (x, y) is set.
func (b Bitboard) Get(x, y int) (bool, error) {
	idx, err := b.bitIndex(x, y)
	if err != nil {
		return false, err
	}
	return b.bits.testBit(idx), nil
}

// Shift returns the bitboard shifted one step in the given direction.
// Horizontal components are masked so that bits never wrap across row
// boundaries; every result is clipped to the board.
func (b Bitboard) Shift(d Direction) Bitboard {
	return Bitboard{size: b.size, bits: dirShift(b.bits, d, uint(b.size), b.masks), masks: b.masks}
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return b.bits.popcount()
}

// Empty reports whether no bit is set.
func (b Bitboard) Empty() bool {
	return b.bits.isZero()
}

// Coordinates returns one (x, y) pair for every set bit, in ascending
// bit-index order (row-major, x fastest). Each bit is isolated with the
// lowest-set-bit trick and converted back to coordinates.
func (b Bitboard) Coordinates() []Move {
	coords := make([]Move, 0, b.PopCount())
	for i, w := range b.bits {
		base := i * 64
		for w != 0 {
			lsb := w & -w
			idx := base + int(popcount64(lsb-1))
			coords = append(coords, Move{X: idx % b.size, Y: idx / b.size})
			w ^= lsb
		}
	}
	return coords
}

// And returns the bitwise AND of two same-size bitboards.
func (b Bitboard) And(o Bitboard) Bitboard {
	return Bitboard{size: b.size, bits: b.bits.and(o.bits), masks: b.masks}
}

// Or returns the bitwise OR of two same-size bitboards.
func (b Bitboard) Or(o Bitboard) Bitboard {
	return Bitboard{size: b.size, bits: b.bits.or(o.bits), masks: b.masks}
}

// Xor returns the bitwise XOR of two same-size bitboards.
func (b Bitboard) Xor(o Bitboard) Bitboard {
	return Bitboard{size: b.size, bits: b.bits.xor(o.bits), masks: b.masks}
}

// Not returns the complement, clipped to the board.
func (b Bitboard) Not() Bitboard {
	return Bitboard{size: b.size, bits: b.masks.Full.andNot(b.bits), masks: b.masks}
}

// Equal reports structural equality. Bitboards of different sizes are
// never equal.
func (b Bitboard) Equal(o Bitboard) bool {
	return b.size == o.size && b.bits == o.bits
}

// Hash returns a hash over (size, bits), equal for equal bitboards.
func (b Bitboard) Hash() uint64 {
	h := uint64(b.size)
	for _, w := range b.bits {
		h = h*0x9E3779B97F4A7C15 ^ w
	}
	return h
}

// String returns a visual grid of the bitboard, for debugging.
func (b Bitboard) String() string {
	var sb strings.Builder
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			if b.bits.testBit(y*b.size + x) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

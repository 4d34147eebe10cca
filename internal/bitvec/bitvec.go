// Package bitvec is a fixed-size set of small integers, used to mark which
// members of a candidate list survive a filter.
package bitvec

import "math/bits"

type Bitvec struct {
	Words []uint64
	Size  int
	Count int
}

func New(size int) *Bitvec {
	numWords := (size + 63) / 64
	return &Bitvec{
		Words: make([]uint64, numWords),
		Size:  size,
		Count: 0,
	}
}

// Full returns a Bitvec with every index below size set.
func Full(size int) *Bitvec {
	bv := New(size)
	for i := range bv.Words {
		bv.Words[i] = ^uint64(0)
	}
	if rem := size % 64; rem != 0 {
		bv.Words[len(bv.Words)-1] = (1 << rem) - 1
	}
	bv.Count = size
	return bv
}

func (bv *Bitvec) Set(index int) {
	wordIndex := index / 64
	bitIndex := index % 64
	if (bv.Words[wordIndex] & (1 << bitIndex)) == 0 {
		bv.Words[wordIndex] |= 1 << bitIndex
		bv.Count++
	}
}

func (bv *Bitvec) And(other *Bitvec) *Bitvec {
	minLen := min(len(other.Words), len(bv.Words))

	result := &Bitvec{Words: make([]uint64, minLen), Size: min(bv.Size, other.Size)}
	for i := range minLen {
		result.Words[i] = bv.Words[i] & other.Words[i]
		result.Count += bits.OnesCount64(result.Words[i])
	}
	return result
}

// Indices lists the set indices in increasing order.
func (bv *Bitvec) Indices() []int {
	ret := make([]int, 0, bv.Count)
	for i, w := range bv.Words {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			ret = append(ret, i*64+tz)
			w &= w - 1
		}
	}
	return ret
}

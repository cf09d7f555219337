// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rng provides the deterministic random source shared by mood
// selection and time-limit assignment.
//
// The default source is a 32-bit Mersenne Twister seeded with the
// init_by_array scheme and sampled by rejection over the minimal bit width,
// which is what the deck has historically been generated with. The same seed
// therefore yields the same moods and time limits as earlier decks.
package rng

import (
	"math"
	"math/bits"
)

const (
	n         = 624
	m         = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// Source is a seeded random source. Implementations are not safe for
// concurrent use.
type Source interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// MT19937 is a Mersenne Twister generator.
type MT19937 struct {
	mt  [n]uint32
	mti int
}

// New returns a generator seeded with seed.
func New(seed uint64) *MT19937 {
	r := &MT19937{}
	r.Seed(seed)
	return r
}

// Seed resets the generator. The seed is split into little-endian 32-bit
// words and fed through init_by_array.
func (r *MT19937) Seed(seed uint64) {
	key := []uint32{uint32(seed)}
	if hi := uint32(seed >> 32); hi != 0 {
		key = append(key, hi)
	}
	r.initByArray(key)
}

func (r *MT19937) initGenrand(s uint32) {
	r.mt[0] = s
	for i := 1; i < n; i++ {
		prev := r.mt[i-1]
		r.mt[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	r.mti = n
}

func (r *MT19937) initByArray(key []uint32) {
	r.initGenrand(19650218)
	i, j := 1, 0
	k := n
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		prev := r.mt[i-1]
		r.mt[i] = (r.mt[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= n {
			r.mt[0] = r.mt[n-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = n - 1; k > 0; k-- {
		prev := r.mt[i-1]
		r.mt[i] = (r.mt[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= n {
			r.mt[0] = r.mt[n-1]
			i = 1
		}
	}
	r.mt[0] = 0x80000000
}

func (r *MT19937) generate() {
	mag := func(y uint32) uint32 {
		if y&1 == 1 {
			return matrixA
		}
		return 0
	}
	var kk int
	for kk = 0; kk < n-m; kk++ {
		y := (r.mt[kk] & upperMask) | (r.mt[kk+1] & lowerMask)
		r.mt[kk] = r.mt[kk+m] ^ (y >> 1) ^ mag(y)
	}
	for ; kk < n-1; kk++ {
		y := (r.mt[kk] & upperMask) | (r.mt[kk+1] & lowerMask)
		r.mt[kk] = r.mt[kk+(m-n)] ^ (y >> 1) ^ mag(y)
	}
	y := (r.mt[n-1] & upperMask) | (r.mt[0] & lowerMask)
	r.mt[n-1] = r.mt[m-1] ^ (y >> 1) ^ mag(y)
	r.mti = 0
}

// Uint32 returns the next tempered 32-bit output.
func (r *MT19937) Uint32() uint32 {
	if r.mti >= n {
		r.generate()
	}
	y := r.mt[r.mti]
	r.mti++
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// random returns a float in [0, 1) with 53 bits of precision.
func (r *MT19937) random() float64 {
	a := r.Uint32() >> 5
	b := r.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// randBits returns k random bits, 1 <= k <= 32.
func (r *MT19937) randBits(k int) uint32 {
	return r.Uint32() >> (32 - k)
}

// IntN returns a uniform integer in [0, bound) by drawing as many bits as bound needs
// and rejecting values out of range.
func (r *MT19937) IntN(bound int) int {
	if bound <= 0 {
		panic("rng: IntN called with non-positive bound")
	}
	if uint64(bound) > math.MaxUint32 {
		panic("rng: IntN bound exceeds 32 bits")
	}
	k := bits.Len32(uint32(bound))
	v := r.randBits(k)
	for v >= uint32(bound) {
		v = r.randBits(k)
	}
	return int(v)
}

// IntRange returns a uniform integer in the closed range [lo, hi].
func IntRange(s Source, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + s.IntN(hi-lo+1)
}

// Choice returns a uniformly chosen element of items. It panics on an empty slice.
func Choice[T any](s Source, items []T) T {
	return items[s.IntN(len(items))]
}

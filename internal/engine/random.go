package engine

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/crypto/sha3"
	"lukechampine.com/frand"
)

// Random is a per-worker generator of unbiased bounded integers.
// It is not safe for concurrent use.
type Random struct {
	src *frand.RNG
	buf [256]byte
	off int
}

// NewRandom creates a generator for one worker. With seed 0 it draws
// entropy from the system; otherwise stream selects an independent,
// reproducible sequence for that seed.
func NewRandom(seed uint64, stream int) *Random {
	r := &Random{}
	r.off = len(r.buf)
	if seed == 0 {
		r.src = frand.New()
		return r
	}

	var in [24]byte
	copy(in[:8], "shogiply")
	binary.LittleEndian.PutUint64(in[8:], seed)
	binary.LittleEndian.PutUint64(in[16:], uint64(stream))
	key := sha3.Sum256(in[:])
	r.src = frand.NewCustom(key[:], 1024, 12)
	return r
}

// Uint32 returns 32 uniformly random bits.
func (r *Random) Uint32() uint32 {
	if r.off+4 > len(r.buf) {
		r.src.Read(r.buf[:])
		r.off = 0
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

// bounded maps random bits into [0, n) with Lemire's multiply-shift,
// rejecting the low products that would bias the result.
func (r *Random) bounded(n uint32) uint32 {
	m := uint64(r.Uint32()) * uint64(n)
	low := uint32(m)
	if low < n {
		threshold := -n % n
		for low < threshold {
			m = uint64(r.Uint32()) * uint64(n)
			low = uint32(m)
		}
	}
	return uint32(m >> 32)
}

// Intn returns a uniform value in [0, n). It panics if n is not in (0, 2^32].
func (r *Random) Intn(n int) int {
	if n <= 0 || uint64(n) > math.MaxUint32+1 {
		panic(fmt.Sprintf("engine: Intn(%d) out of range", n))
	}
	if uint64(n) == math.MaxUint32+1 {
		return int(r.Uint32())
	}
	return int(r.bounded(uint32(n)))
}

// Range returns a uniform value in [lo, hi].
func (r *Random) Range(lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("engine: Range(%d, %d) is empty", lo, hi))
	}
	return lo + r.Intn(hi-lo+1)
}

// FillRange fills dst with uniform values in [lo, hi].
func (r *Random) FillRange(dst []int, lo, hi int) {
	if hi < lo {
		panic(fmt.Sprintf("engine: FillRange(%d, %d) is empty", lo, hi))
	}
	span := hi - lo + 1
	if uint64(span) > math.MaxUint32 {
		for i := range dst {
			dst[i] = lo + r.Intn(span)
		}
		return
	}
	n := uint32(span)
	for i := range dst {
		dst[i] = lo + int(r.bounded(n))
	}
}

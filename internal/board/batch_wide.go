package board

// wideLanes is the number of bitboards processed per iteration.
const wideLanes = 4

// WideKernel processes four bitboards per iteration with independent
// accumulators, which lets the compiler keep them in separate registers.
type WideKernel struct{}

// Name implements Kernel.
func (WideKernel) Name() string { return KernelWide }

// AndBatch implements Kernel.
func (WideKernel) AndBatch(bbs []Bitboard) Bitboard {
	lo0, lo1, lo2, lo3 := Universe.Lo, Universe.Lo, Universe.Lo, Universe.Lo
	hi0, hi1, hi2, hi3 := Universe.Hi, Universe.Hi, Universe.Hi, Universe.Hi
	i := 0
	for ; i+wideLanes <= len(bbs); i += wideLanes {
		lo0 &= bbs[i].Lo
		hi0 &= bbs[i].Hi
		lo1 &= bbs[i+1].Lo
		hi1 &= bbs[i+1].Hi
		lo2 &= bbs[i+2].Lo
		hi2 &= bbs[i+2].Hi
		lo3 &= bbs[i+3].Lo
		hi3 &= bbs[i+3].Hi
	}
	for ; i < len(bbs); i++ {
		lo0 &= bbs[i].Lo
		hi0 &= bbs[i].Hi
	}
	return Bitboard{Lo: lo0 & lo1 & lo2 & lo3, Hi: hi0 & hi1 & hi2 & hi3}
}

// OrBatch implements Kernel.
func (WideKernel) OrBatch(bbs []Bitboard) Bitboard {
	var lo0, lo1, lo2, lo3, hi0, hi1, hi2, hi3 uint64
	i := 0
	for ; i+wideLanes <= len(bbs); i += wideLanes {
		lo0 |= bbs[i].Lo
		hi0 |= bbs[i].Hi
		lo1 |= bbs[i+1].Lo
		hi1 |= bbs[i+1].Hi
		lo2 |= bbs[i+2].Lo
		hi2 |= bbs[i+2].Hi
		lo3 |= bbs[i+3].Lo
		hi3 |= bbs[i+3].Hi
	}
	for ; i < len(bbs); i++ {
		lo0 |= bbs[i].Lo
		hi0 |= bbs[i].Hi
	}
	return Bitboard{Lo: lo0 | lo1 | lo2 | lo3, Hi: hi0 | hi1 | hi2 | hi3}
}

// XorBatch implements Kernel.
func (WideKernel) XorBatch(bbs []Bitboard) Bitboard {
	var lo0, lo1, lo2, lo3, hi0, hi1, hi2, hi3 uint64
	i := 0
	for ; i+wideLanes <= len(bbs); i += wideLanes {
		lo0 ^= bbs[i].Lo
		hi0 ^= bbs[i].Hi
		lo1 ^= bbs[i+1].Lo
		hi1 ^= bbs[i+1].Hi
		lo2 ^= bbs[i+2].Lo
		hi2 ^= bbs[i+2].Hi
		lo3 ^= bbs[i+3].Lo
		hi3 ^= bbs[i+3].Hi
	}
	for ; i < len(bbs); i++ {
		lo0 ^= bbs[i].Lo
		hi0 ^= bbs[i].Hi
	}
	return Bitboard{Lo: lo0 ^ lo1 ^ lo2 ^ lo3, Hi: hi0 ^ hi1 ^ hi2 ^ hi3}
}

// ShiftLeftBatch implements Kernel.
func (WideKernel) ShiftLeftBatch(dst, src []Bitboard, n uint) {
	checkLen("ShiftLeftBatch", dst, src)
	i := 0
	for ; i+wideLanes <= len(src); i += wideLanes {
		dst[i] = src[i].Shl(n)
		dst[i+1] = src[i+1].Shl(n)
		dst[i+2] = src[i+2].Shl(n)
		dst[i+3] = src[i+3].Shl(n)
	}
	for ; i < len(src); i++ {
		dst[i] = src[i].Shl(n)
	}
}

// ShiftRightBatch implements Kernel.
func (WideKernel) ShiftRightBatch(dst, src []Bitboard, n uint) {
	checkLen("ShiftRightBatch", dst, src)
	i := 0
	for ; i+wideLanes <= len(src); i += wideLanes {
		dst[i] = src[i].Shr(n)
		dst[i+1] = src[i+1].Shr(n)
		dst[i+2] = src[i+2].Shr(n)
		dst[i+3] = src[i+3].Shr(n)
	}
	for ; i < len(src); i++ {
		dst[i] = src[i].Shr(n)
	}
}

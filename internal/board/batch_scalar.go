package board

// ScalarKernel is the reference kernel: one bitboard per iteration.
type ScalarKernel struct{}

// Name implements Kernel.
func (ScalarKernel) Name() string { return KernelScalar }

// AndBatch implements Kernel.
func (ScalarKernel) AndBatch(bbs []Bitboard) Bitboard {
	acc := Universe
	for _, b := range bbs {
		acc = acc.And(b)
	}
	return acc
}

// OrBatch implements Kernel.
func (ScalarKernel) OrBatch(bbs []Bitboard) Bitboard {
	acc := Empty
	for _, b := range bbs {
		acc = acc.Or(b)
	}
	return acc
}

// XorBatch implements Kernel.
func (ScalarKernel) XorBatch(bbs []Bitboard) Bitboard {
	acc := Empty
	for _, b := range bbs {
		acc = acc.Xor(b)
	}
	return acc
}

// ShiftLeftBatch implements Kernel.
func (ScalarKernel) ShiftLeftBatch(dst, src []Bitboard, n uint) {
	checkLen("ShiftLeftBatch", dst, src)
	for i, b := range src {
		dst[i] = b.Shl(n)
	}
}

// ShiftRightBatch implements Kernel.
func (ScalarKernel) ShiftRightBatch(dst, src []Bitboard, n uint) {
	checkLen("ShiftRightBatch", dst, src)
	for i, b := range src {
		dst[i] = b.Shr(n)
	}
}

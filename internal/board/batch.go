package board

import (
	"fmt"

	"golang.org/x/sys/cpu"
)

// Kernel performs set operations over slices of bitboards.
// Every implementation must produce results bit-identical to ScalarKernel.
type Kernel interface {
	// Name identifies the implementation in logs and configuration.
	Name() string

	// AndBatch folds the slice with AND; an empty slice yields Universe.
	AndBatch(bbs []Bitboard) Bitboard
	// OrBatch folds the slice with OR; an empty slice yields Empty.
	OrBatch(bbs []Bitboard) Bitboard
	// XorBatch folds the slice with XOR; an empty slice yields Empty.
	XorBatch(bbs []Bitboard) Bitboard

	// ShiftLeftBatch stores src[i].Shl(n) into dst[i].
	ShiftLeftBatch(dst, src []Bitboard, n uint)
	// ShiftRightBatch stores src[i].Shr(n) into dst[i].
	ShiftRightBatch(dst, src []Bitboard, n uint)
}

// Kernel modes accepted by SelectKernel.
const (
	KernelAuto   = "auto"
	KernelScalar = "scalar"
	KernelWide   = "wide"
)

// Features is the subset of CPU capabilities that influences kernel choice.
type Features struct {
	AVX2  bool
	ASIMD bool
}

// DetectFeatures reads the running CPU's capabilities.
func DetectFeatures() Features {
	return Features{
		AVX2:  cpu.X86.HasAVX2,
		ASIMD: cpu.ARM64.HasASIMD,
	}
}

// SelectKernel returns the kernel for a mode using the running CPU's features.
func SelectKernel(mode string) (Kernel, error) {
	return SelectKernelFor(mode, DetectFeatures())
}

// SelectKernelFor returns the kernel for a mode given explicit CPU features.
func SelectKernelFor(mode string, f Features) (Kernel, error) {
	switch mode {
	case KernelScalar:
		return ScalarKernel{}, nil
	case KernelWide:
		return WideKernel{}, nil
	case KernelAuto, "":
		if f.AVX2 || f.ASIMD {
			return WideKernel{}, nil
		}
		return ScalarKernel{}, nil
	}
	return nil, fmt.Errorf("unknown kernel mode: %q", mode)
}

func checkLen(op string, dst, src []Bitboard) {
	if len(dst) != len(src) {
		panic(op + ": slice length mismatch")
	}
}

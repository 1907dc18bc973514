package board

import "testing"

func TestKernelsMatchScalar(t *testing.T) {
	rng := newPRNG(42)
	ref := ScalarKernel{}
	wide := WideKernel{}

	for n := 0; n <= 13; n++ {
		bbs := make([]Bitboard, n)
		for i := range bbs {
			bbs[i] = randomBitboard(rng)
		}

		if got, want := wide.AndBatch(bbs), ref.AndBatch(bbs); got != want {
			t.Errorf("AndBatch(n=%d) = %+v, want %+v", n, got, want)
		}
		if got, want := wide.OrBatch(bbs), ref.OrBatch(bbs); got != want {
			t.Errorf("OrBatch(n=%d) = %+v, want %+v", n, got, want)
		}
		if got, want := wide.XorBatch(bbs), ref.XorBatch(bbs); got != want {
			t.Errorf("XorBatch(n=%d) = %+v, want %+v", n, got, want)
		}

		for _, shift := range []uint{0, 1, 11, 63, 64, 65, 120, 128} {
			got := make([]Bitboard, n)
			want := make([]Bitboard, n)
			wide.ShiftLeftBatch(got, bbs, shift)
			ref.ShiftLeftBatch(want, bbs, shift)
			for i := range got {
				if got[i] != want[i] {
					t.Errorf("ShiftLeftBatch(n=%d, %d)[%d] = %+v, want %+v", n, shift, i, got[i], want[i])
				}
			}
			wide.ShiftRightBatch(got, bbs, shift)
			ref.ShiftRightBatch(want, bbs, shift)
			for i := range got {
				if got[i] != want[i] {
					t.Errorf("ShiftRightBatch(n=%d, %d)[%d] = %+v, want %+v", n, shift, i, got[i], want[i])
				}
			}
		}
	}
}

func TestKernelFoldsMatchPairwise(t *testing.T) {
	rng := newPRNG(3)
	bbs := []Bitboard{randomBitboard(rng), randomBitboard(rng), randomBitboard(rng)}
	for _, k := range []Kernel{ScalarKernel{}, WideKernel{}} {
		if got, want := k.OrBatch(bbs), bbs[0].Or(bbs[1]).Or(bbs[2]); got != want {
			t.Errorf("%s OrBatch = %+v, want %+v", k.Name(), got, want)
		}
		if got := k.AndBatch(nil); got != Universe {
			t.Errorf("%s AndBatch(nil) = %+v, want Universe", k.Name(), got)
		}
		if got := k.XorBatch(nil); got != Empty {
			t.Errorf("%s XorBatch(nil) = %+v, want Empty", k.Name(), got)
		}
	}
}

func TestSelectKernel(t *testing.T) {
	tests := []struct {
		mode     string
		features Features
		want     string
	}{
		{KernelScalar, Features{AVX2: true}, KernelScalar},
		{KernelWide, Features{}, KernelWide},
		{KernelAuto, Features{}, KernelScalar},
		{KernelAuto, Features{AVX2: true}, KernelWide},
		{KernelAuto, Features{ASIMD: true}, KernelWide},
		{"", Features{}, KernelScalar},
	}

	for _, tc := range tests {
		k, err := SelectKernelFor(tc.mode, tc.features)
		if err != nil {
			t.Fatalf("SelectKernelFor(%q) error: %v", tc.mode, err)
		}
		if k.Name() != tc.want {
			t.Errorf("SelectKernelFor(%q, %+v) = %s, want %s", tc.mode, tc.features, k.Name(), tc.want)
		}
	}

	if _, err := SelectKernelFor("avx512", Features{}); err == nil {
		t.Error("expected error for unknown kernel mode")
	}
}

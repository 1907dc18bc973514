package engine

import "testing"

func TestRandomRange(t *testing.T) {
	r := NewRandom(0, 0)
	for i := 0; i < 10000; i++ {
		if v := r.Range(-3, 4); v < -3 || v > 4 {
			t.Fatalf("Range(-3, 4) = %d", v)
		}
		if v := r.Intn(1); v != 0 {
			t.Fatalf("Intn(1) = %d", v)
		}
	}

	buf := make([]int, 4096)
	r.FillRange(buf, 10, 12)
	for _, v := range buf {
		if v < 10 || v > 12 {
			t.Fatalf("FillRange value %d outside [10, 12]", v)
		}
	}
}

func TestRandomUniform(t *testing.T) {
	r := NewRandom(1234, 0)
	const n, draws = 7, 70000
	var counts [n]int
	buf := make([]int, draws)
	r.FillRange(buf, 0, n-1)
	for _, v := range buf {
		counts[v]++
	}
	for i, c := range counts {
		if c < 9000 || c > 11000 {
			t.Errorf("value %d drawn %d times, want about %d", i, c, draws/n)
		}
	}
}

func TestRandomSeededStreams(t *testing.T) {
	a, b, c := NewRandom(77, 0), NewRandom(77, 0), NewRandom(77, 1)
	same, diff := true, false
	for i := 0; i < 64; i++ {
		x, y, z := a.Uint32(), b.Uint32(), c.Uint32()
		if x != y {
			same = false
		}
		if x != z {
			diff = true
		}
	}
	if !same {
		t.Error("same seed and stream should repeat")
	}
	if !diff {
		t.Error("different streams should differ")
	}
}

func TestRandomPanicsOnEmptyRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Intn(0) did not panic")
		}
	}()
	NewRandom(0, 0).Intn(0)
}

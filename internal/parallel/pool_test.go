package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNewPoolDefaults(t *testing.T) {
	p := NewPool(0)
	defer p.Close()
	if p.Workers() != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers() = %d, want GOMAXPROCS %d", p.Workers(), runtime.GOMAXPROCS(0))
	}
}

func TestForEachCoversAllIndices(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	const n = 500
	seen := make([]atomic.Int32, n)
	p.ForEach(n, func(i int) {
		seen[i].Add(1)
	})

	for i := range seen {
		if got := seen[i].Load(); got != 1 {
			t.Errorf("index %d ran %d times, want 1", i, got)
		}
	}
}

func TestForEachDisjointWrites(t *testing.T) {
	p := NewPool(8)
	defer p.Close()

	out := make([]int, 1000)
	p.ForEach(len(out), func(i int) {
		out[i] = i * i
	})
	for i, v := range out {
		if v != i*i {
			t.Errorf("out[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestForEachEmpty(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	ran := false
	p.ForEach(0, func(int) { ran = true })
	p.ForEach(-5, func(int) { ran = true })
	if ran {
		t.Error("ForEach ran work for a non-positive count")
	}
}

func TestForEachSingleWorker(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	var count atomic.Int32
	p.ForEach(100, func(int) {
		count.Add(1)
	})
	if count.Load() != 100 {
		t.Errorf("ran %d items, want 100", count.Load())
	}
}

func TestCloseIdempotent(t *testing.T) {
	p := NewPool(2)
	p.Close()
	p.Close() // must not panic or hang

	// ForEach after Close is a no-op.
	ran := false
	p.ForEach(3, func(int) { ran = true })
	if ran {
		t.Error("ForEach ran work on a closed pool")
	}
}

func TestManySmallBatches(t *testing.T) {
	p := NewPool(3)
	defer p.Close()

	var total atomic.Int64
	for round := 0; round < 50; round++ {
		p.ForEach(20, func(i int) {
			total.Add(int64(i))
		})
	}
	want := int64(50 * (19 * 20 / 2))
	if total.Load() != want {
		t.Errorf("total = %d, want %d", total.Load(), want)
	}
}

package parallel

import "testing"

func TestPartitionCoversRangeExactlyOnce(t *testing.T) {
	for _, tc := range []struct{ start, length, workers int }{
		{0, 100, 4}, {10, 37, 5}, {0, 1, 3}, {0, 0, 4},
	} {
		spans := Partition(tc.start, tc.length, tc.workers)
		covered := make(map[int]bool)
		for _, sp := range spans {
			for i := sp.Lo; i < sp.Hi; i++ {
				if covered[i] {
					t.Fatalf("index %d covered twice", i)
				}
				covered[i] = true
			}
		}
		if len(covered) != tc.length {
			t.Fatalf("covered %d indices, want %d", len(covered), tc.length)
		}
	}
}

func TestForVisitsEveryIndexExactlyOnce(t *testing.T) {
	n := 10000
	seen := make([]int32, n)
	For(0, n, func(i int) {
		seen[i]++
	})
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}

func TestNumWorkersNeverExceedsChunks(t *testing.T) {
	if w := NumWorkers(10); w > 1 {
		t.Fatalf("NumWorkers(10) = %d, want <= 1 given SequentialThreshold=%d", w, SequentialThreshold)
	}
	if w := NumWorkers(1_000_000); w < 1 {
		t.Fatalf("NumWorkers(1_000_000) = %d, want >= 1", w)
	}
}

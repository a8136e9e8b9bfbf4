package radix

import (
	"os"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestMain(m *testing.M) {
	retryDelay = time.Millisecond
	os.Exit(m.Run())
}

func TestDivideInBatches(t *testing.T) {
	testCases := []struct {
		name      string
		items     []int
		batchSize int
		expect    [][]int
	}{
		{
			name:      "even split",
			items:     []int{1, 2, 3, 4},
			batchSize: 2,
			expect:    [][]int{{1, 2}, {3, 4}},
		},
		{
			name:      "short final batch",
			items:     []int{1, 2, 3, 4, 5},
			batchSize: 2,
			expect:    [][]int{{1, 2}, {3, 4}, {5}},
		},
		{
			name:      "batch larger than input",
			items:     []int{1, 2},
			batchSize: 10,
			expect:    [][]int{{1, 2}},
		},
		{
			name:      "empty input",
			items:     nil,
			batchSize: 3,
			expect:    nil,
		},
		{
			name:      "invalid batch size",
			items:     []int{1, 2},
			batchSize: 0,
			expect:    nil,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			batches := DivideInBatches(testCase.items, testCase.batchSize)

			if len(batches) != len(testCase.expect) {
				t.Fatalf("expected %d batches, got %d", len(testCase.expect), len(batches))
			}

			var flattened []int
			for i, batch := range batches {
				if len(batch) != len(testCase.expect[i]) {
					t.Fatalf("batch %d: expected %d items, got %d", i, len(testCase.expect[i]), len(batch))
				}
				if i < len(batches)-1 && len(batch) != testCase.batchSize {
					t.Fatalf("batch %d is not full", i)
				}
				flattened = append(flattened, batch...)
			}

			for i, item := range flattened {
				if item != testCase.items[i] {
					t.Fatalf("order not preserved at index %d", i)
				}
			}
		})
	}
}

func TestWithMaxLoopsAlwaysFailing(t *testing.T) {
	calls := 0
	boom := errors.New("boom")

	_, err := WithMaxLoops(func() (int, error) {
		calls++
		return 0, boom
	}, "always failing op", 5)

	if calls != 5 {
		t.Fatalf("expected exactly 5 attempts, got %d", calls)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected the causing error to surface, got %+v", err)
	}
}

func TestWithMaxLoopsEventualSuccess(t *testing.T) {
	calls := 0

	out, err := WithMaxLoops(func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("not yet")
		}
		return "done", nil
	}, "eventually succeeding op", 10)

	if err != nil {
		t.Fatalf("%+v", err)
	}
	if calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", calls)
	}
	if out != "done" {
		t.Fatalf("unexpected result: %s", out)
	}
}

func TestWithMaxLoopsImmediateSuccess(t *testing.T) {
	calls := 0

	out, err := WithMaxLoops(func() (int, error) {
		calls++
		return 42, nil
	}, "succeeding op", 30)

	if err != nil {
		t.Fatalf("%+v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly 1 attempt, got %d", calls)
	}
	if out != 42 {
		t.Fatalf("unexpected result: %d", out)
	}
}

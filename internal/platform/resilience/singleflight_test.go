package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var executions atomic.Int32

	gate := make(chan struct{})
	var wg sync.WaitGroup
	results := make([]any, 10)

	for i := range results {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			val, err, _ := g.Do("pool", func() (any, error) {
				executions.Add(1)
				<-gate
				return "snapshot", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[idx] = val
		}(i)
	}

	close(gate)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected a single execution, got %d", got)
	}
	for i, val := range results {
		if val != "snapshot" {
			t.Fatalf("result[%d]: expected shared value, got %v", i, val)
		}
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var g SingleFlight

	a, err, shared := g.Do("a", func() (any, error) { return 1, nil })
	if err != nil || shared || a != 1 {
		t.Fatalf("unexpected result for key a: %v %v %t", a, err, shared)
	}
	b, err, shared := g.Do("b", func() (any, error) { return 2, nil })
	if err != nil || shared || b != 2 {
		t.Fatalf("unexpected result for key b: %v %v %t", b, err, shared)
	}
}

package validate

import (
	"context"
	"testing"
)

func TestNoneReportsEveryCandidateViable(t *testing.T) {
	var none None
	xs := []int32{1, 2, 3}
	zs := []int32{4, 5, 6}
	out := make([]bool, 3)

	if err := none.IsViableBatch(context.Background(), xs, zs, out); err != nil {
		t.Fatalf("IsViableBatch: %v", err)
	}
	for i, ok := range out {
		if !ok {
			t.Errorf("out[%d] = false, want true (None is a superset)", i)
		}
	}
	if !none.ConcurrencySafe() {
		t.Errorf("None should advertise concurrency-safety")
	}
	if err := none.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestIsViableDispatchesToBatch(t *testing.T) {
	ok, err := IsViable(context.Background(), None{}, 10, 20)
	if err != nil {
		t.Fatalf("IsViable: %v", err)
	}
	if !ok {
		t.Fatalf("expected None to report viable=true")
	}
}

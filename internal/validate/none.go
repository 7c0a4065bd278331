package validate

import "context"

// None is the absent-validator variant: every candidate is reported viable,
// yielding the placement-only superset. It produces more false positives,
// but never drops a candidate that placement alone would have kept.
type None struct{}

func (None) IsViableBatch(_ context.Context, _, chunkZs []int32, out []bool) error {
	for i := range chunkZs {
		out[i] = true
	}
	return nil
}

func (None) ConcurrencySafe() bool { return true }

func (None) Close() error { return nil }

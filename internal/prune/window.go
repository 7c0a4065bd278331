package prune

import "afkfinder/internal/scanner"

// window is the sliding 3-column buffer Stage A needs: previous, current,
// and next. It holds at most two completed columns plus the one just
// received, and releases the oldest as soon as the column it borders has
// been processed.
type window struct {
	twoAgo *scanner.Column
	oneAgo *scanner.Column
}

// push feeds a newly arrived column through the window, invoking process
// once per completed "curr" column with its (possibly nil) prev and next.
// The very first and last columns of a scan are processed with a nil
// neighbor on the missing side.
func (w *window) push(col *scanner.Column, process func(prev, curr, next *scanner.Column) error) error {
	if w.oneAgo != nil {
		if err := process(w.twoAgo, w.oneAgo, col); err != nil {
			return err
		}
	}
	w.twoAgo, w.oneAgo = w.oneAgo, col
	return nil
}

// flush processes the final column still held, if any, with a nil next.
func (w *window) flush(process func(prev, curr, next *scanner.Column) error) error {
	if w.oneAgo == nil {
		return nil
	}
	return process(w.twoAgo, w.oneAgo, nil)
}

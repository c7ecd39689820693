package engine

import "github.com/acdrive/acdrive/internal/model"

// Select forces the table's row selection to exactly "selected iff the
// row's key value is in targets". There is no native select-by-value
// primitive, so it starts from select-all and clears every non-matching
// row individually. Targets absent from the table are never matched and
// an empty target set deselects every row; re-running with the same
// arguments is a no-op.
func (e *Engine) Select(snap model.TableSnapshot, key string, targets []string) error {
	if !snap.HasColumn(key) {
		return Errorf(CodeKeyColumnNotFound, "column %q not present in table (have %v)", key, snap.Columns)
	}

	want := make(map[string]bool, len(targets))
	for _, t := range targets {
		want[t] = true
	}

	if err := e.drv.SelectAll(snap.Table); err != nil {
		return err
	}
	for i, rec := range snap.Rows {
		value, _ := rec[key].(string)
		if want[value] {
			continue
		}
		if err := e.drv.SetRowSelected(snap.RowRefs[i], false); err != nil {
			return err
		}
	}
	return nil
}

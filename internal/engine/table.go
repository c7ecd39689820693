package engine

import "github.com/acdrive/acdrive/internal/model"

// Extract takes a point-in-time snapshot of a tabular UI region without
// hard-coded column indices. The full header set is read first, blanks
// included, to preserve positional alignment with cells; unlabeled
// columns are then skipped rather than counted. A cell's primary value
// is its element name; cells rendered as containers instead carry the
// value on a nested text field, and both shapes must be handled.
func (e *Engine) Extract(table model.Ref) (model.TableSnapshot, error) {
	columns, err := e.drv.ColumnNames(table)
	if err != nil {
		return model.TableSnapshot{}, err
	}

	snap := model.TableSnapshot{Table: table, Rows: []model.RowRecord{}, RowRefs: []model.Ref{}}
	for _, c := range columns {
		if c != "" {
			snap.Columns = append(snap.Columns, c)
		}
	}

	children, err := e.drv.Children(table)
	if err != nil {
		return model.TableSnapshot{}, err
	}
	for _, row := range children {
		if row.Role != model.RoleRow {
			continue
		}
		cells, err := e.drv.Children(row.Ref)
		if err != nil {
			return model.TableSnapshot{}, err
		}
		rec := make(model.RowRecord, len(snap.Columns)+1)
		for i, name := range columns {
			if name == "" || i >= len(cells) {
				continue
			}
			value := cells[i].Name
			if value == "" {
				value, err = e.nestedCellValue(cells[i].Ref)
				if err != nil {
					return model.TableSnapshot{}, err
				}
			}
			rec[name] = value
		}
		rec[model.SelectedKey] = row.Selected
		snap.Rows = append(snap.Rows, rec)
		snap.RowRefs = append(snap.RowRefs, row.Ref)
	}
	return snap, nil
}

// nestedCellValue reads the value of the first text element inside a
// container-style cell.
func (e *Engine) nestedCellValue(cell model.Ref) (string, error) {
	children, err := e.drv.Children(cell)
	if err != nil {
		return "", err
	}
	for _, c := range children {
		if c.Role == model.RoleTextField || c.Role == model.RoleText {
			return c.Value, nil
		}
	}
	return "", nil
}

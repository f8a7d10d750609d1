package entity

import (
	"vaultScope/internal/model"
)

// Tables accumulates create-row operations in insertion order.
type Tables struct {
	rows []*model.EntityRow
}

// Row wraps a pending row so fields can be chained onto it.
type Row struct {
	row *model.EntityRow
}

func NewTables() *Tables {
	return &Tables{}
}

// CreateRow appends a new create-row operation. Repeated keys are not
// collapsed here; the sink's upsert decides the final value.
func (t *Tables) CreateRow(table, key string) *Row {
	row := &model.EntityRow{
		Table:  table,
		Key:    key,
		Fields: make(map[string]interface{}),
	}
	t.rows = append(t.rows, row)
	return &Row{row: row}
}

// Set assigns a field value on the row.
func (r *Row) Set(field string, value interface{}) *Row {
	r.row.Fields[field] = value
	return r
}

// Rows returns the accumulated operations in creation order.
func (t *Tables) Rows() []model.EntityRow {
	rows := make([]model.EntityRow, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, *row)
	}
	return rows
}

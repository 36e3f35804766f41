package domain

// ForeignKeyRef points a column at the table/column it references.
type ForeignKeyRef struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

// ColumnSchema describes one column of a learner-facing table.
type ColumnSchema struct {
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	Nullable     bool           `json:"nullable"`
	IsPrimaryKey bool           `json:"is_primary_key"`
	ForeignKey   *ForeignKeyRef `json:"foreign_key,omitempty"`
}

// TableSchema is a read-only projection of one table in the disposable
// namespace. Regenerated on demand, never cached: the underlying tables can
// be replaced by any reset.
type TableSchema struct {
	TableName string         `json:"table_name"`
	Columns   []ColumnSchema `json:"columns"`
}

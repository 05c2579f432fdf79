package artifact

// TableDocument is a table-oriented JSON payload: an explicit field schema
// plus row objects. The descriptive statistics artifact uses this shape so
// dashboard tables can render it without knowing the column set in advance.
type TableDocument struct {
	Schema TableSchema      `json:"schema"`
	Data   []map[string]any `json:"data"`
}

// TableSchema describes the columns of a TableDocument.
type TableSchema struct {
	Fields     []TableField `json:"fields"`
	PrimaryKey []string     `json:"primaryKey,omitempty"`
}

// TableField is one column of a TableDocument.
type TableField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

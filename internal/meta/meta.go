// Package meta holds the rendering metadata derived from annotated queries.
package meta

import "fmt"

// ColumnKind tags a table column.
type ColumnKind int

const (
	StringColumn ColumnKind = iota
	IntColumn
	BooleanColumn
	EnumColumn
	DateColumn
)

var columnKindNames = [...]string{
	StringColumn:  "TableStringColumnInfo",
	IntColumn:     "TableIntColumnInfo",
	BooleanColumn: "TableBooleanColumnInfo",
	EnumColumn:    "TableEnumColumnInfo",
	DateColumn:    "TableDateColumnInfo",
}

func (k ColumnKind) String() string {
	if int(k) < len(columnKindNames) {
		return columnKindNames[k]
	}
	return fmt.Sprintf("ColumnKind(%d)", int(k))
}

func (k ColumnKind) MarshalText() ([]byte, error) {
	if int(k) >= len(columnKindNames) {
		return nil, fmt.Errorf("unknown column kind %d", int(k))
	}
	return []byte(columnKindNames[k]), nil
}

func (k *ColumnKind) UnmarshalText(text []byte) error {
	for i, name := range columnKindNames {
		if name == string(text) {
			*k = ColumnKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown column kind %q", text)
}

// ColumnInfo describes one table column. Path is the dot-joined response
// path starting with the operation keyword.
type ColumnInfo struct {
	Kind        ColumnKind `json:"kind"`
	Key         string     `json:"key"`
	Label       string     `json:"label"`
	Description string     `json:"description,omitempty"`
	Path        string     `json:"path"`
	EnumValues  []string   `json:"enumValues,omitempty"`
}

// TableMeta is the result of table extraction. TotalPath is empty when the
// query carries no @total.
type TableMeta struct {
	Columns   []ColumnInfo `json:"columns"`
	TotalPath string       `json:"totalPath"`
}

// FormKind tags a form field.
type FormKind int

const (
	TextInput FormKind = iota
	BooleanInput
	EnumInput
	IDInput
	DateInput
)

var formKindNames = [...]string{
	TextInput:    "FormTextInputFieldMeta",
	BooleanInput: "FormBooleanInputFieldMeta",
	EnumInput:    "FormEnumInputFieldMeta",
	IDInput:      "FormIDInputFieldMeta",
	DateInput:    "FormDateInputFieldMeta",
}

func (k FormKind) String() string {
	if int(k) < len(formKindNames) {
		return formKindNames[k]
	}
	return fmt.Sprintf("FormKind(%d)", int(k))
}

func (k FormKind) MarshalText() ([]byte, error) {
	if int(k) >= len(formKindNames) {
		return nil, fmt.Errorf("unknown form kind %d", int(k))
	}
	return []byte(formKindNames[k]), nil
}

func (k *FormKind) UnmarshalText(text []byte) error {
	for i, name := range formKindNames {
		if name == string(text) {
			*k = FormKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown form kind %q", text)
}

// FormMeta describes one editable form field. Editable is false exactly for
// ID fields, which share the text kind with String.
type FormMeta struct {
	Kind        FormKind `json:"kind"`
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Path        string   `json:"path"`
	TypeName    string   `json:"typeName"`
	NonNull     bool     `json:"isNonNull"`
	Editable    bool     `json:"isEditable"`
	Options     []string `json:"options,omitempty"`
}

// Cell is one projected table value.
type Cell struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// NullOption is the enum option that stands for an unset value.
const NullOption = "NULL"

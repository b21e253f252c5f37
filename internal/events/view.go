package events

import "time"

// ExtractStart is emitted before metadata is extracted from a query.
// Mode is "table" or "form".
type ExtractStart struct {
	Mode          string
	OperationName string
}

// ExtractFinish is emitted after extraction. Fields counts the columns or
// form fields produced.
type ExtractFinish struct {
	Mode          string
	OperationName string
	Fields        int
	Err           error
	Duration      time.Duration
}

// ProjectStart is emitted before rows are projected through columns.
type ProjectStart struct {
	Rows    int
	Columns int
}

// ProjectFinish is emitted after projection.
type ProjectFinish struct {
	Rows     int
	Columns  int
	Err      error
	Duration time.Duration
}

// Snapshot is emitted for every result snapshot a view consumes.
type Snapshot struct {
	View    string
	Loading bool
	Errors  int
}

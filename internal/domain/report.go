package domain

import "time"

// Table is a titled block of rows under a fixed header.
// Cells may be nil; renderers show those as "N/A".
type Table struct {
	Title   string
	Headers []string
	Rows    [][]any
}

// Section groups the tables that belong under one report heading.
type Section struct {
	Title  string
	Tables []Table
}

// Report is the assembled output of one run.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Sections    []Section
}

package ports

import (
	"finboard/domain/table"
)

// DatasetReaderPort loads the raw table from a tabular source file. The load
// happens exactly once, at startup; a failed load is fatal to the process.
type DatasetReaderPort interface {
	ReadTable() (*table.RawTable, error)
}

// Package tabular reads delimited and spreadsheet dataset files into the raw
// table the pipeline starts from.
package tabular

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"finboard/domain/table"

	"github.com/xuri/excelize/v2"
)

// Reader handles reading CSV and Excel dataset files
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader that handles both CSV and Excel files, chosen by
// file extension.
func NewReader(filePath string) (*Reader, error) {
	var fileType string
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		fileType = "csv"
	case ".xlsx", ".xlsm":
		fileType = "xlsx"
	default:
		return nil, fmt.Errorf("unsupported data file extension: %s", filePath)
	}
	return &Reader{filePath: filePath, fileType: fileType}, nil
}

// ReadTable reads the source file into a RawTable
func (r *Reader) ReadTable() (*table.RawTable, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readExcel reads Sheet1 of an Excel workbook
func (r *Reader) readExcel() (*table.RawTable, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()
	fileOpenTime := time.Since(startTime)
	log.Printf("[DataReader] Excel file opened in %.2fms", float64(fileOpenTime.Nanoseconds())/1e6)

	// Always use Sheet1
	readStart := time.Now()
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	readTime := time.Since(readStart)
	log.Printf("[DataReader] Sheet1 read in %.2fms (%d rows)", float64(readTime.Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("Excel file must have at least a header row and one data row")
	}

	return r.processRows(rows)
}

// readCSV reads a delimited file
func (r *Reader) readCSV() (*table.RawTable, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	readTime := time.Since(readStart)
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)", float64(readTime.Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV file must have at least a header row and one data row")
	}

	return r.processRows(rows)
}

// processRows converts raw string rows into a RawTable
func (r *Reader) processRows(rows [][]string) (*table.RawTable, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	var dataRows []table.RawRow
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(table.RawRow)

		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}

		dataRows = append(dataRows, rowData)
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &table.RawTable{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}

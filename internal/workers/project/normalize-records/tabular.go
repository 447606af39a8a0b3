// internal/workers/project/normalize-records/tabular.go
package normalizerecords

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	apperrors "project-analyzer/internal/common/errors"
	"project-analyzer/internal/models"
)

// Column names must equal the record field names; there is no remapping.
const (
	columnName        = "nombre"
	columnLocation    = "ubicacion"
	columnActionURL   = "actionUrl"
	columnDescription = "descripcion"
)

func (h *Handler) normalizeTabular(data []byte) ([]models.ProjectRecord, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []models.ProjectRecord{}, nil
	}
	if err != nil {
		return nil, apperrors.NewInputDecodeFailedError(string(FormatTabular), err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	known := 0
	for _, name := range []string{columnName, columnLocation, columnActionURL, columnDescription} {
		if _, ok := columns[name]; ok {
			known++
		}
	}

	records := []models.ProjectRecord{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewInputDecodeFailedError(string(FormatTabular), err)
		}
		if known == 0 {
			return nil, apperrors.NewRecordValidationFailedError(fmt.Sprintf(
				"header %v has none of the columns %s, %s, %s, %s",
				header, columnName, columnLocation, columnActionURL, columnDescription))
		}

		records = append(records, models.ProjectRecord{
			Name:        cell(row, columns, columnName),
			Location:    cell(row, columns, columnLocation),
			ActionURL:   cell(row, columns, columnActionURL),
			Description: cell(row, columns, columnDescription),
		})
	}
	return records, nil
}

// cell returns the value under column, or nil when the column is missing from
// the header or the row is too short to reach it.
func cell(row []string, columns map[string]int, column string) *string {
	idx, ok := columns[column]
	if !ok || idx >= len(row) {
		return nil
	}
	v := row[idx]
	return &v
}

package review

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/opsdesk/core"
)

const uploadField = "file"

// DecodeCSV reads rows keyed by the header line. Number and Bool schema columns are parsed,
// empty cells are left out so that Ingest gives them their default.
// An empty input yields no rows; an unreadable one is a validation error.
func DecodeCSV(r io.Reader, schema Schema) ([]map[string]interface{}, error) {
	rdr := csv.NewReader(r)
	rdr.TrimLeadingSpace = true
	rdr.FieldsPerRecord = -1

	header, err := rdr.Read()
	if err == io.EOF {
		return []map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, invalidUpload(err.Error())
	}
	for i := range header {
		header[i] = core.CleanString(header[i], true /* lower */)
	}

	var rows []map[string]interface{}
	for line := 2; ; line++ {
		record, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, invalidUpload(err.Error())
		}
		if len(record) > len(header) {
			return nil, invalidUpload(fmt.Sprintf("line %d: %d columns but the header has %d", line, len(record), len(header)))
		}

		row := make(map[string]interface{}, len(header))
		for i, cell := range record {
			cell = core.CleanString(cell)
			if cell == "" {
				continue
			}
			col := header[i]
			val, err := parseCell(cell, schema[col])
			if err != nil {
				return nil, invalidUpload(fmt.Sprintf("line %d: column %q: %v", line, col, err))
			}
			row[col] = val
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseCell(cell string, spec FieldSpec) (interface{}, error) {
	switch spec.Type {
	case Number:
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, errors.New("not a number")
		}
		return f, nil
	case Bool:
		b, err := strconv.ParseBool(cell)
		if err != nil {
			return nil, errors.New("not a boolean")
		}
		return b, nil
	default:
		return cell, nil
	}
}

func invalidUpload(reason string) error {
	err := errors.New("invalid upload: " + reason)
	return core.NewValidationError(err, core.FieldError{Field: uploadField, Error: reason})
}

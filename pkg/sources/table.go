package sources

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/openscreening/cslimport/pkg/dedup"
)

// ErrSchemaDrift is returned when a delimited input's header row does not
// match the importer's expected column set. It is raised before any row is
// processed and before any artifact is written.
var ErrSchemaDrift = errors.New("actual headers differ from expected headers")

// Table is one parsed delimited file.
type Table struct {
	Header []string
	Rows   []dedup.Row
}

// ReadTable parses delimited data into header-keyed rows, stripping a
// UTF-8 BOM when present. Short rows leave their trailing columns empty.
// Unnamed header cells keep their position so the columns after them stay
// aligned; their values just carry no key.
func ReadTable(data []byte, comma rune) (*Table, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited file: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("delimited file has no header row")
	}

	names := make([]string, len(records[0]))
	header := make([]string, 0, len(records[0]))
	for i, h := range records[0] {
		names[i] = strings.TrimSpace(h)
		if names[i] != "" {
			header = append(header, names[i])
		}
	}

	table := &Table{Header: header}
	for _, rec := range records[1:] {
		row := make(dedup.Row, len(header))
		for i, name := range names {
			if name == "" {
				continue
			}
			if i < len(rec) {
				row[name] = rec[i]
			} else {
				row[name] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// RequireHeaders validates that the header set equals expected exactly.
func (t *Table) RequireHeaders(expected []string) error {
	actual := headerSet(t.Header)
	want := headerSet(expected)
	if len(actual) != len(want) {
		return headerMismatch(actual, want)
	}
	for h := range want {
		if !actual[h] {
			return headerMismatch(actual, want)
		}
	}
	return nil
}

// RequireHeaderSuperset validates that every expected header is present;
// additional columns are tolerated. Sources that append informational
// columns without notice use this policy.
func (t *Table) RequireHeaderSuperset(expected []string) error {
	actual := headerSet(t.Header)
	for _, h := range expected {
		if !actual[h] {
			return headerMismatch(actual, headerSet(expected))
		}
	}
	return nil
}

func headerSet(headers []string) map[string]bool {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		set[h] = true
	}
	return set
}

func headerMismatch(actual, want map[string]bool) error {
	var missing, extra []string
	for h := range want {
		if !actual[h] {
			missing = append(missing, h)
		}
	}
	for h := range actual {
		if !want[h] {
			extra = append(extra, h)
		}
	}
	return fmt.Errorf("%w (missing: %v, unexpected: %v)", ErrSchemaDrift, missing, extra)
}

package csl

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
)

// Artifacts holds the three renderings of one source's record set. All
// three are assembled fully in memory so that a failed run never publishes
// a partial artifact.
type Artifacts struct {
	CSV  []byte
	TSV  []byte
	JSON []byte
}

// Render builds the CSV, TSV, and JSON artifacts for records. The CSV and
// TSV carry the FlatFields header even for an empty record set; the JSON is
// a single array of nested-form documents.
func Render(records []Record) (*Artifacts, error) {
	var csvBuf, tsvBuf bytes.Buffer

	csvW := csv.NewWriter(&csvBuf)
	tsvW := csv.NewWriter(&tsvBuf)
	tsvW.Comma = '\t'

	for _, w := range []*csv.Writer{csvW, tsvW} {
		if err := w.Write(FlatFields); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	for i := range records {
		row := records[i].Flat()
		if err := csvW.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
		if err := tsvW.Write(row); err != nil {
			return nil, fmt.Errorf("write tsv row: %w", err)
		}
	}
	csvW.Flush()
	tsvW.Flush()
	if err := csvW.Error(); err != nil {
		return nil, err
	}
	if err := tsvW.Error(); err != nil {
		return nil, err
	}

	// A zero-record set still publishes "[]", not "null".
	docs := records
	if docs == nil {
		docs = []Record{}
	}
	jsonOut, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("marshal json artifact: %w", err)
	}

	return &Artifacts{CSV: csvBuf.Bytes(), TSV: tsvBuf.Bytes(), JSON: jsonOut}, nil
}

package csl

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestFlatMatchesFieldOrder(t *testing.T) {
	r := Record{
		ID:                   "abc",
		Source:               "Test Source",
		Name:                 "Acme Corp",
		Programs:             []string{"EAR", "ISA"},
		AltNames:             []string{"Acme", "ACME Inc"},
		StartDate:            Ptr("2020-01-02"),
		SourceListURL:        "https://example.com/list",
		SourceInformationURL: "https://example.com/info",
		Addresses: []Address{
			{Address: Ptr("1 Main St"), City: Ptr("Springfield"), Country: Ptr("US")},
			{City: Ptr("Shenzhen"), Country: Ptr("CN")},
		},
		IDs: []ID{
			{Type: "Passport", Number: Ptr("A123"), Country: Ptr("IR")},
		},
	}

	flat := r.Flat()
	if len(flat) != len(FlatFields) {
		t.Fatalf("flat row has %d columns, want %d", len(flat), len(FlatFields))
	}

	byField := map[string]string{}
	for i, f := range FlatFields {
		byField[f] = flat[i]
	}
	if byField["_id"] != "abc" {
		t.Fatalf("_id column = %q", byField["_id"])
	}
	if byField["programs"] != "EAR; ISA" {
		t.Fatalf("programs column = %q", byField["programs"])
	}
	if byField["addresses"] != "1 Main St, Springfield, US; Shenzhen, CN" {
		t.Fatalf("addresses column = %q", byField["addresses"])
	}
	if byField["ids"] != "Passport, A123, IR" {
		t.Fatalf("ids column = %q", byField["ids"])
	}
	if byField["end_date"] != "" {
		t.Fatalf("unset scalar must flatten to empty, got %q", byField["end_date"])
	}
}

func TestRenderEmptySet(t *testing.T) {
	a, err := Render(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(a.JSON) != "[]" {
		t.Fatalf("empty json artifact = %q, want []", a.JSON)
	}

	rows, err := csv.NewReader(bytes.NewReader(a.CSV)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || !reflect.DeepEqual(rows[0], FlatFields) {
		t.Fatalf("empty csv artifact must hold exactly the header, got %v", rows)
	}
	if !strings.Contains(string(a.TSV), "_id\tsource") {
		t.Fatalf("tsv header not tab-delimited: %q", a.TSV)
	}
}

func TestRenderJSONExplicitNulls(t *testing.T) {
	a, err := Render([]Record{{ID: "x", Source: "s", Name: "n"}})
	if err != nil {
		t.Fatal(err)
	}

	var docs []map[string]json.RawMessage
	if err := json.Unmarshal(a.JSON, &docs); err != nil {
		t.Fatal(err)
	}
	doc := docs[0]
	for _, key := range []string{"title", "start_date", "addresses", "alt_names", "ids"} {
		raw, ok := doc[key]
		if !ok {
			t.Fatalf("key %q missing from nested document", key)
		}
		if string(raw) != "null" {
			t.Fatalf("unset %q = %s, want explicit null", key, raw)
		}
	}

	// Keys come out sorted because the struct declares them that way.
	dec := json.NewDecoder(bytes.NewReader(a.JSON))
	dec.Token() // [
	dec.Token() // {
	tok, _ := dec.Token()
	if tok != "addresses" {
		t.Fatalf("first document key = %v, want addresses", tok)
	}
}

func TestPtr(t *testing.T) {
	if Ptr("") != nil {
		t.Fatal("Ptr(\"\") must be nil")
	}
	if p := Ptr("x"); p == nil || *p != "x" {
		t.Fatalf("Ptr(\"x\") = %v", p)
	}
}

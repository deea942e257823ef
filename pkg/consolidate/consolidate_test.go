package consolidate

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/openscreening/cslimport/pkg/store"
)

func TestParseMarker(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Tue, 02 Jan 2024 03:04:05 GMT", "2024-01-02T03:04:05+00:00"},
		{"1.5.23", "2023-01-05T00:00:00+00:00"},
	}
	for _, c := range cases {
		got, err := ParseMarker(c.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Fatalf("ParseMarker(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	if _, err := ParseMarker("N/A"); err == nil {
		t.Fatal("expected error for unparseable marker")
	}
}

func TestRun(t *testing.T) {
	st, err := store.NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	put := func(name, body string) {
		t.Helper()
		if err := st.Put(ctx, name, "application/json", []byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	put("sdn.json", `[{"id":"1","name":"A"},{"id":"2","name":"B"}]`)
	put("dpl.json", `[{"id":"3","name":"C"}]`)
	put("sdn_meta.txt", "Tue, 02 Jan 2024 03:04:05 GMT")
	// dpl has no checkpoint: its source_last_updated must be null.

	log := logrus.New()
	log.SetOutput(io.Discard)

	srcs := []Source{
		{Abbr: "sdn", Name: "Specially Designated Nationals (SDN) - Treasury Department", Checkpoint: "sdn"},
		{Abbr: "dpl", Name: "Denied Persons List (DPL) - Bureau of Industry and Security", Checkpoint: "dpl"},
		{Abbr: "uvl", Name: "Unverified List (UVL) - Bureau of Industry and Security", Checkpoint: "uvl"},
	}
	if err := Run(ctx, st, log, srcs); err != nil {
		t.Fatal(err)
	}

	data, err := st.Get(ctx, OutputName)
	if err != nil {
		t.Fatal(err)
	}
	doc := gjson.ParseBytes(data)

	if got := doc.Get("total").Int(); got != 3 {
		t.Fatalf("total = %d, want 3", got)
	}
	if got := len(doc.Get("results").Array()); got != 3 {
		t.Fatalf("results length = %d, want 3", got)
	}
	if got := doc.Get("offset").Int(); got != 0 {
		t.Fatalf("offset = %d", got)
	}

	used := doc.Get("sources_used").Array()
	// uvl has no artifact yet, so only two sources appear.
	if len(used) != 2 {
		t.Fatalf("sources_used has %d entries, want 2", len(used))
	}
	if got := used[0].Get("source_last_updated").String(); got != "2024-01-02T03:04:05+00:00" {
		t.Fatalf("sdn last updated = %q", got)
	}
	if used[1].Get("source_last_updated").Type != gjson.Null {
		t.Fatalf("dpl last updated must be null, got %v", used[1].Get("source_last_updated"))
	}
	if got := used[0].Get("import_rate").String(); got != "Hourly" {
		t.Fatalf("import rate = %q", got)
	}
	if doc.Get("search_performed_at").String() == "" {
		t.Fatal("search_performed_at missing")
	}
}

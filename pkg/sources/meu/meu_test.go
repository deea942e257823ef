package meu

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/openscreening/cslimport/pkg/fetch"
	"github.com/openscreening/cslimport/pkg/sources"
	"github.com/openscreening/cslimport/pkg/store"
)

type fakeFetcher struct {
	resp *fetch.Response
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (*fetch.Response, error) {
	return f.resp, nil
}

func TestRunDecodesLatin1(t *testing.T) {
	row := map[string]string{
		"Name":                    "Soci\xe9t\xe9 Aviation",
		"Address":                 "5 Hangar Rd",
		"City":                    "Shenzhen",
		"State/Province":          "Guangdong",
		"Postal Code":             "518000",
		"Country":                 "China",
		"Federal Register Notice": "86 FR 100",
		"Effective Date":          "1/14/2021",
		"License Requirement":     "All items",
		"License Policy":          "Presumption of denial",
		"Standard Order":          "Y",
		"Alternate Name":          "Shenzhen Aviation",
	}
	fields := make([]string, len(expectedHeaders))
	for i, h := range expectedHeaders {
		fields[i] = row[h]
	}
	body := strings.Join(expectedHeaders, ",") + "\n" + strings.Join(fields, ",") + "\n"

	st, err := store.NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	deps := sources.Deps{
		Fetch: &fakeFetcher{resp: &fetch.Response{
			Body:         []byte(body),
			LastModified: "Thu, 14 Jan 2021 00:00:00 GMT",
		}},
		Store: st,
		Log:   log,
	}

	res, err := New().Run(context.Background(), deps)
	if err != nil {
		t.Fatal(err)
	}
	if res.EntityCount != 1 {
		t.Fatalf("entity count = %d, want 1", res.EntityCount)
	}

	data, err := st.Get(context.Background(), "meu.json")
	if err != nil {
		t.Fatal(err)
	}
	doc := gjson.ParseBytes(data).Array()[0]

	if got := doc.Get("name").String(); got != "Société Aviation" {
		t.Fatalf("latin-1 name not decoded: %q", got)
	}
	if doc.Get("id").String() == "" {
		t.Fatal("minted id missing")
	}
	addr := doc.Get("addresses").Array()[0]
	if got := addr.Get("country").String(); got != "CN" {
		t.Fatalf("address country = %q, want CN", got)
	}
	if got := doc.Get("alt_names").Array(); len(got) != 1 || got[0].String() != "Shenzhen Aviation" {
		t.Fatalf("alt names = %v", got)
	}
	if got := doc.Get("start_date").String(); got != "2021-01-14" {
		t.Fatalf("start_date = %q", got)
	}
}

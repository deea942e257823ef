package isn

import (
	"context"
	"io"
	"reflect"
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

const feed = "Source List,Programs,Name,Alternative Names,Country,Federal Register Notice,Effective Date,Remarks/Notes,Web Link\n" +
	"ISN,INKSNA,Acme Exports,\"Acme Trading, and Acme Intl\",Iran,80 FR 1000,5/9/2019,,https://example.com\n" +
	"ISN,E.O. 13382,Acme Exports,\"Acme Trading, and Acme Intl\",Iran,80 FR 1000,5/9/2019,,https://example.com\n"

func TestRunAccumulatesPrograms(t *testing.T) {
	st, err := store.NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	deps := sources.Deps{
		Fetch: &fakeFetcher{resp: &fetch.Response{
			Body:         []byte(feed),
			LastModified: "Tue, 02 Jan 2024 03:04:05 GMT",
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

	data, err := st.Get(context.Background(), "isn.json")
	if err != nil {
		t.Fatal(err)
	}
	doc := gjson.ParseBytes(data).Array()[0]

	programs := []string{}
	for _, p := range doc.Get("programs").Array() {
		programs = append(programs, p.String())
	}
	if !reflect.DeepEqual(programs, []string{"INKSNA", "E.O. 13382"}) {
		t.Fatalf("programs = %v", programs)
	}

	alts := []string{}
	for _, a := range doc.Get("alt_names").Array() {
		alts = append(alts, a.String())
	}
	if !reflect.DeepEqual(alts, []string{"Acme Trading", "Acme Intl"}) {
		t.Fatalf("alt names = %v", alts)
	}

	if got := doc.Get("remarks").Type; got != gjson.Null {
		t.Fatalf("empty remarks must be null, got %v", got)
	}
	if got := doc.Get("start_date").String(); got != "2019-05-09" {
		t.Fatalf("start_date = %q", got)
	}
}

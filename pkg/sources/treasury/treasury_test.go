package treasury

import (
	"context"
	"io"
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

// The FSE list sits under ID 90001 here, not its published 91469.
const advancedFeed = `<?xml version="1.0" encoding="utf-8"?>
<Sanctions>
  <ReferenceValueSets>
    <AliasTypeValues>
      <AliasType ID="1403">Name</AliasType>
    </AliasTypeValues>
    <ListValues>
      <List ID="90001">FSE List</List>
    </ListValues>
    <NamePartTypeValues>
      <NamePartType ID="1525">Entity Name</NamePartType>
    </NamePartTypeValues>
    <PartySubTypeValues>
      <PartySubType ID="3" PartyTypeID="2">Unknown</PartySubType>
    </PartySubTypeValues>
    <PartyTypeValues>
      <PartyType ID="2">Entity</PartyType>
    </PartyTypeValues>
  </ReferenceValueSets>
  <DistinctParties>
    <DistinctParty FixedRef="50">
      <Profile ID="50" PartySubTypeID="3">
        <Identity ID="800">
          <Alias AliasTypeID="1403">
            <DocumentedName>
              <DocumentedNamePart>
                <NamePartValue NamePartGroupID="900" ScriptID="215">EXAMPLE TRADING CO</NamePartValue>
              </DocumentedNamePart>
            </DocumentedName>
          </Alias>
          <NamePartGroups>
            <MasterNamePartGroup>
              <NamePartGroup ID="900" NamePartTypeID="1525" />
            </MasterNamePartGroup>
          </NamePartGroups>
        </Identity>
      </Profile>
    </DistinctParty>
  </DistinctParties>
  <SanctionsEntries>
    <SanctionsEntry ID="1" ProfileID="50" ListID="90001">
      <SanctionsMeasure SanctionsTypeID="1">
        <Comment>FSE-IR</Comment>
      </SanctionsMeasure>
    </SanctionsEntry>
  </SanctionsEntries>
</Sanctions>`

func TestRunResolvesRenumberedList(t *testing.T) {
	st, err := store.NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	deps := sources.Deps{
		Fetch: &fakeFetcher{resp: &fetch.Response{
			Body:         []byte(advancedFeed),
			LastModified: "Tue, 02 Jan 2024 03:04:05 GMT",
		}},
		Store: st,
		Log:   log,
	}

	var imp *Importer
	for _, s := range Sources() {
		if s.Abbr() == "fse" {
			imp = s
		}
	}
	if imp == nil {
		t.Fatal("fse importer not registered")
	}

	res, err := imp.Run(context.Background(), deps)
	if err != nil {
		t.Fatal(err)
	}
	if res.EntityCount != 1 {
		t.Fatalf("entity count = %d, want 1 (renumbered list not resolved by name)", res.EntityCount)
	}

	data, err := st.Get(context.Background(), "fse.json")
	if err != nil {
		t.Fatal(err)
	}
	doc := gjson.ParseBytes(data).Array()[0]
	if got := doc.Get("name").String(); got != "EXAMPLE TRADING CO" {
		t.Fatalf("name = %q", got)
	}
	if got := doc.Get("source").String(); got != imp.Source() {
		t.Fatalf("source = %q", got)
	}
}

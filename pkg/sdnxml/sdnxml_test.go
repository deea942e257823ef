package sdnxml

import (
	"reflect"
	"strings"
	"testing"
)

const fixture = `<?xml version="1.0" encoding="utf-8"?>
<sdnList xmlns="http://tempuri.org/sdnList.xsd">
  <sdnEntry>
    <uid>9001</uid>
    <firstName>Jamal</firstName>
    <lastName>AHMADI</lastName>
    <title>Director</title>
    <sdnType>Individual</sdnType>
    <remarks>Linked To: EXAMPLE TRADING.</remarks>
    <programList>
      <program>SDGT</program>
      <program>IRGC</program>
    </programList>
    <idList>
      <id>
        <uid>1</uid>
        <idType>Passport</idType>
        <idNumber>D9004127</idNumber>
        <idCountry>Iran</idCountry>
      </id>
    </idList>
    <akaList>
      <aka>
        <uid>2</uid>
        <type>a.k.a.</type>
        <category>strong</category>
        <firstName>Jamil</firstName>
        <lastName>AHMADY</lastName>
      </aka>
      <aka>
        <uid>3</uid>
        <type>a.k.a.</type>
        <category>weak</category>
        <firstName>orphan</firstName>
        <lastName></lastName>
      </aka>
    </akaList>
    <addressList>
      <address>
        <uid>4</uid>
        <address1>Pasdaran Ave</address1>
        <address2>Building 5</address2>
        <city>Tehran</city>
        <country>Iran</country>
      </address>
    </addressList>
    <nationalityList>
      <nationality><uid>5</uid><country>Iran</country><mainEntry>true</mainEntry></nationality>
    </nationalityList>
    <citizenshipList>
      <citizenship><uid>6</uid><country>Iran</country><mainEntry>true</mainEntry></citizenship>
    </citizenshipList>
    <dateOfBirthList>
      <dateOfBirthItem><uid>7</uid><dateOfBirth>12 Feb 1955</dateOfBirth><mainEntry>true</mainEntry></dateOfBirthItem>
    </dateOfBirthList>
    <placeOfBirthList>
      <placeOfBirthItem><uid>8</uid><placeOfBirth>Tehran, Iran</placeOfBirth><mainEntry>true</mainEntry></placeOfBirthItem>
    </placeOfBirthList>
  </sdnEntry>
  <sdnEntry>
    <uid>9002</uid>
    <lastName>SEA DREAM</lastName>
    <sdnType>Vessel</sdnType>
    <programList><program>NS-PLC</program></programList>
    <vesselInfo>
      <uid>9</uid>
      <callSign>T8A4059</callSign>
      <vesselType>Crude Oil Tanker</vesselType>
      <vesselFlag>Panama</vesselFlag>
      <vesselOwner>EXAMPLE SHIPPING</vesselOwner>
      <tonnage>81000</tonnage>
      <grossRegisteredTonnage>160000</grossRegisteredTonnage>
    </vesselInfo>
  </sdnEntry>
</sdnList>`

func TestParseAndTransform(t *testing.T) {
	list, err := Parse(strings.NewReader(fixture))
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(list.Entries))
	}

	rec := list.Entries[0].ToRecord(LastFirst)
	if rec.ID != "9001" || rec.EntityNumber == nil || *rec.EntityNumber != "9001" {
		t.Fatalf("uid mapping wrong: id=%q", rec.ID)
	}
	if rec.Name != "AHMADI, Jamal" {
		t.Fatalf("name = %q", rec.Name)
	}
	if !reflect.DeepEqual(rec.AltNames, []string{"AHMADY, Jamil"}) {
		t.Fatalf("alt names = %v", rec.AltNames)
	}
	if !reflect.DeepEqual(rec.Programs, []string{"SDGT", "IRGC"}) {
		t.Fatalf("programs = %v", rec.Programs)
	}
	if !reflect.DeepEqual(rec.Citizenships, []string{"IR"}) || !reflect.DeepEqual(rec.Nationalities, []string{"IR"}) {
		t.Fatalf("countries not coded: %v / %v", rec.Citizenships, rec.Nationalities)
	}
	if !reflect.DeepEqual(rec.DatesOfBirth, []string{"1955-02-12"}) {
		t.Fatalf("dates of birth = %v", rec.DatesOfBirth)
	}
	if len(rec.IDs) != 1 || rec.IDs[0].Type != "Passport" || *rec.IDs[0].Country != "IR" {
		t.Fatalf("ids = %+v", rec.IDs)
	}
	if len(rec.Addresses) != 1 {
		t.Fatalf("addresses = %+v", rec.Addresses)
	}
	if got := *rec.Addresses[0].Address; got != "Pasdaran Ave, Building 5" {
		t.Fatalf("multi-line address joined wrong: %q", got)
	}
	if *rec.Addresses[0].Country != "IR" {
		t.Fatalf("address country = %q", *rec.Addresses[0].Country)
	}
}

func TestVesselEntry(t *testing.T) {
	list, err := Parse(strings.NewReader(fixture))
	if err != nil {
		t.Fatal(err)
	}

	rec := list.Entries[1].ToRecord(FirstLast)
	if rec.Name != "SEA DREAM" {
		t.Fatalf("vessel name = %q", rec.Name)
	}
	if rec.CallSign == nil || *rec.CallSign != "T8A4059" {
		t.Fatalf("call sign = %v", rec.CallSign)
	}
	if rec.GrossTonnage == nil || *rec.GrossTonnage != "81000" {
		t.Fatalf("gross tonnage = %v", rec.GrossTonnage)
	}
	if rec.GrossRegisteredTonnage == nil || *rec.GrossRegisteredTonnage != "160000" {
		t.Fatalf("gross registered tonnage = %v", rec.GrossRegisteredTonnage)
	}
}

func TestDisplayNameOrders(t *testing.T) {
	e := Entry{FirstName: "Maria", LastName: "LOPEZ"}
	if got := e.Name(FirstLast); got != "Maria LOPEZ" {
		t.Fatalf("firstlast = %q", got)
	}
	if got := e.Name(LastFirst); got != "LOPEZ, Maria" {
		t.Fatalf("lastfirst = %q", got)
	}
	solo := Entry{LastName: "ACME TRADING LLC"}
	if got := solo.Name(LastFirst); got != "ACME TRADING LLC" {
		t.Fatalf("entity name = %q", got)
	}
}

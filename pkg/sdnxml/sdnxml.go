// Package sdnxml parses the legacy Treasury sdnList.xsd dialect used by
// the SDN list and the consolidated non-SDN file, and transforms its
// entries into the unified record shape.
package sdnxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// NameOrder selects the display convention for person names. The SDN
// import has historically published "Last, First"; the consolidated file
// publishes "First Last". Each source's convention is fixed configuration,
// not inferred.
type NameOrder int

const (
	FirstLast NameOrder = iota
	LastFirst
)

// List is the decoded document root.
type List struct {
	Entries []Entry `xml:"sdnEntry"`
}

type Entry struct {
	UID           string        `xml:"uid"`
	FirstName     string        `xml:"firstName"`
	LastName      string        `xml:"lastName"`
	Title         string        `xml:"title"`
	SDNType       string        `xml:"sdnType"`
	Remarks       string        `xml:"remarks"`
	Programs      []string      `xml:"programList>program"`
	IDs           []IDItem      `xml:"idList>id"`
	AKAs          []AKA         `xml:"akaList>aka"`
	Addresses     []AddressItem `xml:"addressList>address"`
	Nationalities []CountryItem `xml:"nationalityList>nationality"`
	Citizenships  []CountryItem `xml:"citizenshipList>citizenship"`
	DatesOfBirth  []DOBItem     `xml:"dateOfBirthList>dateOfBirthItem"`
	PlacesOfBirth []POBItem     `xml:"placeOfBirthList>placeOfBirthItem"`
	Vessel        *VesselInfo   `xml:"vesselInfo"`
}

type IDItem struct {
	Type    string `xml:"idType"`
	Number  string `xml:"idNumber"`
	Country string `xml:"idCountry"`
}

type AKA struct {
	Type      string `xml:"type"`
	Category  string `xml:"category"`
	FirstName string `xml:"firstName"`
	LastName  string `xml:"lastName"`
}

type AddressItem struct {
	Address1        string `xml:"address1"`
	Address2        string `xml:"address2"`
	Address3        string `xml:"address3"`
	City            string `xml:"city"`
	StateOrProvince string `xml:"stateOrProvince"`
	PostalCode      string `xml:"postalCode"`
	Country         string `xml:"country"`
}

type CountryItem struct {
	Country string `xml:"country"`
}

type DOBItem struct {
	DateOfBirth string `xml:"dateOfBirth"`
}

type POBItem struct {
	PlaceOfBirth string `xml:"placeOfBirth"`
}

type VesselInfo struct {
	CallSign               string `xml:"callSign"`
	VesselType             string `xml:"vesselType"`
	VesselFlag             string `xml:"vesselFlag"`
	VesselOwner            string `xml:"vesselOwner"`
	Tonnage                string `xml:"tonnage"`
	GrossRegisteredTonnage string `xml:"grossRegisteredTonnage"`
}

// Parse decodes a legacy-format document.
func Parse(r io.Reader) (*List, error) {
	var list List
	if err := xml.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode sdn list: %w", err)
	}
	return &list, nil
}

// Name renders the entry's primary name in the requested display order.
// Entries without a first name (entities, vessels) use the last-name
// element alone, whatever the order.
func (e *Entry) Name(order NameOrder) string {
	return displayName(e.FirstName, e.LastName, order)
}

// AltNames renders the entry's aka list in the requested display order,
// skipping aka entries without a last-name element.
func (e *Entry) AltNames(order NameOrder) []string {
	names := []string{}
	for _, aka := range e.AKAs {
		if strings.TrimSpace(aka.LastName) == "" {
			continue
		}
		names = append(names, displayName(aka.FirstName, aka.LastName, order))
	}
	return names
}

func displayName(first, last string, order NameOrder) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first == "" {
		return last
	}
	if order == LastFirst {
		return fmt.Sprintf("%s, %s", last, first)
	}
	return fmt.Sprintf("%s %s", first, last)
}

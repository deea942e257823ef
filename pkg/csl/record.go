// Package csl defines the unified Consolidated Screening List record
// contract shared by every importer, plus its two renderings: the nested
// document form used for JSON artifacts and the flattened scalar form used
// for CSV/TSV artifacts.
package csl

// FlatFields is the fixed column order of the CSV/TSV projection. The
// header row is written even when a source yields zero records.
var FlatFields = []string{
	"_id", "source", "entity_number", "type",
	"programs", "name", "title", "addresses",
	"federal_register_notice", "start_date", "end_date",
	"standard_order", "license_requirement", "license_policy",
	"call_sign", "vessel_type", "gross_tonnage",
	"gross_registered_tonnage", "vessel_flag", "vessel_owner",
	"remarks", "source_list_url", "alt_names",
	"citizenships", "dates_of_birth", "nationalities", "places_of_birth",
	"source_information_url", "ids",
}

// Address is a single physical address. Missing parts are explicit nulls,
// never omitted keys: downstream consumers rely on a stable shape.
type Address struct {
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
}

// ID is one identity document (passport, registration number, cargo code,
// or an ad hoc coded attribute synthesized from a source feature).
type ID struct {
	Type           string  `json:"type"`
	Number         *string `json:"number"`
	Country        *string `json:"country"`
	IssueDate      *string `json:"issue_date"`
	ExpirationDate *string `json:"expiration_date"`
}

// Record is the union of all per-source entity shapes. Struct fields are
// declared in lexicographic order of their JSON keys so that marshaled
// documents are byte-stable across runs and easy to diff.
//
// Pointer and slice fields marshal to explicit nulls when unset; a source
// that never carries a field still emits the key.
type Record struct {
	Addresses              []Address `json:"addresses"`
	AltNames               []string  `json:"alt_names"`
	CallSign               *string   `json:"call_sign"`
	Citizenships           []string  `json:"citizenships"`
	DatesOfBirth           []string  `json:"dates_of_birth"`
	EndDate                *string   `json:"end_date"`
	EntityNumber           *string   `json:"entity_number"`
	FederalRegisterNotice  *string   `json:"federal_register_notice"`
	GrossRegisteredTonnage *string   `json:"gross_registered_tonnage"`
	GrossTonnage           *string   `json:"gross_tonnage"`
	ID                     string    `json:"id"`
	IDs                    []ID      `json:"ids"`
	LicensePolicy          *string   `json:"license_policy"`
	LicenseRequirement     *string   `json:"license_requirement"`
	Name                   string    `json:"name"`
	Nationalities          []string  `json:"nationalities"`
	PlacesOfBirth          []string  `json:"places_of_birth"`
	Programs               []string  `json:"programs"`
	Remarks                *string   `json:"remarks"`
	Source                 string    `json:"source"`
	SourceInformationURL   string    `json:"source_information_url"`
	SourceListURL          string    `json:"source_list_url"`
	StandardOrder          *string   `json:"standard_order"`
	StartDate              *string   `json:"start_date"`
	Title                  *string   `json:"title"`
	Type                   *string   `json:"type"`
	VesselFlag             *string   `json:"vessel_flag"`
	VesselOwner            *string   `json:"vessel_owner"`
	VesselType             *string   `json:"vessel_type"`
}

// Ptr returns a pointer to s, or nil when s is empty. Importers use it to
// turn absent CSV cells and XML elements into explicit nulls.
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

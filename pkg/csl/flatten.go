package csl

import "strings"

// FlatAddress joins the non-null parts of one address with ", " in the
// fixed address/city/state/postal_code/country order.
func FlatAddress(a Address) string {
	parts := make([]string, 0, 5)
	for _, p := range []*string{a.Address, a.City, a.State, a.PostalCode, a.Country} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	return strings.Join(parts, ", ")
}

// FlatAddresses renders a list of addresses as a single "; "-joined string.
func FlatAddresses(addrs []Address) string {
	lines := make([]string, 0, len(addrs))
	for _, a := range addrs {
		lines = append(lines, FlatAddress(a))
	}
	return strings.Join(lines, "; ")
}

func flatID(id ID) string {
	parts := make([]string, 0, 5)
	if id.Type != "" {
		parts = append(parts, id.Type)
	}
	for _, p := range []*string{id.Number, id.Country, id.IssueDate, id.ExpirationDate} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	return strings.Join(parts, ", ")
}

func orEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Flat derives the flattened scalar projection of r in FlatFields order.
// Multi-valued fields are joined with "; "; address and id tuples use ", "
// internally. The entity identifier column is named "_id" here while the
// nested form keeps "id".
func (r *Record) Flat() []string {
	ids := make([]string, 0, len(r.IDs))
	for _, id := range r.IDs {
		ids = append(ids, flatID(id))
	}

	return []string{
		r.ID,
		r.Source,
		orEmpty(r.EntityNumber),
		orEmpty(r.Type),
		strings.Join(r.Programs, "; "),
		r.Name,
		orEmpty(r.Title),
		FlatAddresses(r.Addresses),
		orEmpty(r.FederalRegisterNotice),
		orEmpty(r.StartDate),
		orEmpty(r.EndDate),
		orEmpty(r.StandardOrder),
		orEmpty(r.LicenseRequirement),
		orEmpty(r.LicensePolicy),
		orEmpty(r.CallSign),
		orEmpty(r.VesselType),
		orEmpty(r.GrossTonnage),
		orEmpty(r.GrossRegisteredTonnage),
		orEmpty(r.VesselFlag),
		orEmpty(r.VesselOwner),
		orEmpty(r.Remarks),
		r.SourceListURL,
		strings.Join(r.AltNames, "; "),
		strings.Join(r.Citizenships, "; "),
		strings.Join(r.DatesOfBirth, "; "),
		strings.Join(r.Nationalities, "; "),
		strings.Join(r.PlacesOfBirth, "; "),
		r.SourceInformationURL,
		strings.Join(ids, "; "),
	}
}

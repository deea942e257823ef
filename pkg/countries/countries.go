// Package countries resolves the country names found in government list
// feeds to ISO 3166-1 alpha-2 codes.
package countries

import (
	"strings"

	"github.com/biter777/countries"
)

// Spellings the feeds use that no general lookup resolves: historical names
// (Burma, Netherlands Antilles), typos that appear verbatim in the data
// (moracco, honk kong), and region labels without ISO codes.
var overrides = map[string]string{
	"brunei":                            "BN",
	"bahamas, the":                      "BS",
	"burma":                             "MM",
	"cabo verde":                        "CV",
	"cabo verde.  previously cape verde.": "CV",
	"cote d ivoire":                     "CI",
	"congo, democratic republic of the": "CG",
	"congo, republic of the":            "CG",
	"china":                             "CN",
	"crimea":                            "crimea (occupied)",
	"crimea (occupied)":                 "crimea (occupied)",
	"region: crimea":                    "crimea (occupied)",
	"the gambia":                        "GM",
	"honk kong":                         "HK",
	"kong kong":                         "HK",
	"iran":                              "IR",
	"korea, north":                      "KP",
	"north korea":                       "KP",
	"korea, south":                      "KR",
	"south korea":                       "KR",
	"kosovo":                            "XK",
	"macao":                             "MO",
	"moracco":                           "MA",
	"netherlands antilles":              "AN",
	"north macedonia, the republic of":  "MK",
	"palestinian":                       "PS",
	"region: gaza":                      "PS",
	"west bank":                         "PS",
	"russia":                            "RU",
	"syria":                             "SY",
	"uae":                               "AE",
	"u.a.e.":                            "AE",
	"united arab emirates (uae)":        "AE",
}

// Code resolves name to an ISO2 code. Unresolvable names pass through
// lower-cased rather than erroring: the output contract prefers a
// recognizable raw value over a dropped column.
func Code(name string) string {
	if len(name) == 0 {
		return name
	}
	lowered := strings.ToLower(name)
	if code, ok := overrides[lowered]; ok {
		return code
	}
	if c := countries.ByName(lowered); c != countries.Unknown {
		return c.Alpha2()
	}
	return lowered
}

package region

import "strings"

// Normalize maps a raw region string (full name, postal abbreviation, common
// variant spelling) to the canonical display name used by the browsing UI.
// Country comparison is case-insensitive and tolerates common country aliases.
// Unmapped but non-empty input passes through trimmed; empty input maps to ""
// and is expected to be dropped by the caller.
func Normalize(raw, country string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	table, ok := aliasesByCountry[countryKey(country)]
	if !ok {
		return s
	}
	if canonical, ok := table[strings.ToLower(s)]; ok {
		return canonical
	}
	return s
}

// countryKey resolves country name variants onto the alias-table keys.
func countryKey(country string) string {
	switch strings.ToLower(strings.TrimSpace(country)) {
	case "canada", "ca":
		return "canada"
	case "usa", "us", "united states", "united states of america":
		return "usa"
	case "uk", "united kingdom", "great britain", "england":
		return "uk"
	}
	return strings.ToLower(strings.TrimSpace(country))
}

// aliasesByCountry is immutable after package init. Keys are lowercased
// variants, values the canonical display name.
var aliasesByCountry = map[string]map[string]string{
	"canada": buildAliases([]regionAliases{
		{"Alberta", []string{"AB", "Alta"}},
		{"British Columbia", []string{"BC", "B.C.", "Colombie-Britannique"}},
		{"Manitoba", []string{"MB", "Man"}},
		{"New Brunswick", []string{"NB", "Nouveau-Brunswick"}},
		{"Newfoundland and Labrador", []string{"NL", "Newfoundland", "Labrador", "Terre-Neuve-et-Labrador"}},
		{"Northwest Territories", []string{"NT", "NWT"}},
		{"Nova Scotia", []string{"NS", "Nouvelle-Écosse"}},
		{"Nunavut", []string{"NU"}},
		{"Ontario", []string{"ON", "Ont"}},
		{"Prince Edward Island", []string{"PE", "PEI", "P.E.I.", "Île-du-Prince-Édouard"}},
		{"Quebec", []string{"QC", "PQ", "Québec"}},
		{"Saskatchewan", []string{"SK", "Sask"}},
		{"Yukon", []string{"YT", "Yukon Territory"}},
	}),
	"usa": buildAliases([]regionAliases{
		{"Alabama", []string{"AL"}},
		{"Alaska", []string{"AK"}},
		{"Arizona", []string{"AZ"}},
		{"Arkansas", []string{"AR"}},
		{"California", []string{"CA", "Calif"}},
		{"Colorado", []string{"CO"}},
		{"Connecticut", []string{"CT"}},
		{"Delaware", []string{"DE"}},
		{"District of Columbia", []string{"DC", "Washington DC", "Washington D.C."}},
		{"Florida", []string{"FL", "Fla"}},
		{"Georgia", []string{"GA"}},
		{"Hawaii", []string{"HI"}},
		{"Idaho", []string{"ID"}},
		{"Illinois", []string{"IL"}},
		{"Indiana", []string{"IN"}},
		{"Iowa", []string{"IA"}},
		{"Kansas", []string{"KS"}},
		{"Kentucky", []string{"KY"}},
		{"Louisiana", []string{"LA"}},
		{"Maine", []string{"ME"}},
		{"Maryland", []string{"MD"}},
		{"Massachusetts", []string{"MA", "Mass"}},
		{"Michigan", []string{"MI", "Mich"}},
		{"Minnesota", []string{"MN", "Minn"}},
		{"Mississippi", []string{"MS"}},
		{"Missouri", []string{"MO"}},
		{"Montana", []string{"MT"}},
		{"Nebraska", []string{"NE"}},
		{"Nevada", []string{"NV"}},
		{"New Hampshire", []string{"NH"}},
		{"New Jersey", []string{"NJ"}},
		{"New Mexico", []string{"NM"}},
		{"New York", []string{"NY", "New York State"}},
		{"North Carolina", []string{"NC"}},
		{"North Dakota", []string{"ND"}},
		{"Ohio", []string{"OH"}},
		{"Oklahoma", []string{"OK"}},
		{"Oregon", []string{"OR"}},
		{"Pennsylvania", []string{"PA", "Penn"}},
		{"Rhode Island", []string{"RI"}},
		{"South Carolina", []string{"SC"}},
		{"South Dakota", []string{"SD"}},
		{"Tennessee", []string{"TN", "Tenn"}},
		{"Texas", []string{"TX", "Tex"}},
		{"Utah", []string{"UT"}},
		{"Vermont", []string{"VT"}},
		{"Virginia", []string{"VA"}},
		{"Washington", []string{"WA"}},
		{"West Virginia", []string{"WV"}},
		{"Wisconsin", []string{"WI", "Wisc"}},
		{"Wyoming", []string{"WY"}},
	}),
	// UK listings carry county or region names in the state field; the
	// variants below are the ones seen in the imported spreadsheets.
	"uk": buildAliases([]regionAliases{
		{"Greater London", []string{"London", "City of London"}},
		{"Greater Manchester", []string{"Manchester"}},
		{"West Midlands", []string{"Birmingham Area"}},
		{"West Yorkshire", []string{"W Yorkshire", "W. Yorkshire"}},
		{"South Yorkshire", []string{"S Yorkshire", "S. Yorkshire"}},
		{"North Yorkshire", []string{"N Yorkshire", "N. Yorkshire"}},
		{"Merseyside", []string{"Liverpool Area"}},
		{"Tyne and Wear", []string{"Tyne & Wear"}},
		{"Scotland", []string{"Alba"}},
		{"Wales", []string{"Cymru"}},
		{"Northern Ireland", []string{"N Ireland", "N. Ireland"}},
	}),
}

type regionAliases struct {
	canonical string
	variants  []string
}

func buildAliases(entries []regionAliases) map[string]string {
	out := make(map[string]string, len(entries)*3)
	for _, e := range entries {
		out[strings.ToLower(e.canonical)] = e.canonical
		for _, v := range e.variants {
			out[strings.ToLower(v)] = e.canonical
		}
	}
	return out
}

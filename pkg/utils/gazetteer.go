package utils

import (
	"strings"
)

// facilityGazetteer is the fixed list of recognized facility areas.
// Order matters: the first hit wins.
var facilityGazetteer = []string{
	"Andheri",
	"Bandra",
	"Juhu",
	"Powai",
	"Malad",
	"Goregaon",
	"Borivali",
	"Kandivali",
	"Vile Parle",
	"Santacruz",
	"Khar",
	"Dadar",
	"Lower Parel",
	"Chembur",
	"Mulund",
	"Vikhroli",
	"Thane",
	"Navi Mumbai",
}

// locationSynonyms collapses near-duplicate spellings to the
// canonical gazetteer name. Checked as an ordered list so matching
// stays deterministic.
var locationSynonyms = []struct {
	variant   string
	canonical string
}{
	{"kandivli", "Kandivali"},
	{"borivli", "Borivali"},
	{"santa cruz", "Santacruz"},
	{"vileparle", "Vile Parle"},
	{"vile-parle", "Vile Parle"},
	{"navi-mumbai", "Navi Mumbai"},
}

// ResolveLocation scans lines in order for the first gazetteer or
// synonym hit. Returns fallback when no facility name appears.
func ResolveLocation(lines []string, fallback string) string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, name := range facilityGazetteer {
			if strings.Contains(lower, strings.ToLower(name)) {
				return name
			}
		}
		for _, syn := range locationSynonyms {
			if strings.Contains(lower, syn.variant) {
				return syn.canonical
			}
		}
	}
	return fallback
}

// sportNames is the fixed sport list; compound names precede their
// substrings so "Box Cricket" is not read as "Cricket".
var sportNames = []string{
	"Badminton",
	"Box Cricket",
	"Cricket",
	"Football",
	"Table Tennis",
	"Tennis",
	"Pickleball",
	"Basketball",
	"Squash",
	"Swimming",
}

// ResolveSport returns the first sport name found anywhere in text,
// or fallback when none matches.
func ResolveSport(text, fallback string) string {
	lower := strings.ToLower(text)
	for _, sport := range sportNames {
		if strings.Contains(lower, strings.ToLower(sport)) {
			return sport
		}
	}
	return fallback
}

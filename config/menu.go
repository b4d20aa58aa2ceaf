package config

import "strings"

var (
	sexMenu = map[string]string{
		"1": "Female",
		"2": "Male",
	}

	genotypeMenu = map[string]string{
		"1": "WT",
		"2": "5XFAD",
	}
)

// ParseSex accepts a menu choice ("1" Female, "2" Male) or either name.
// Anything else is "NA".
func ParseSex(input string) string {
	return fromMenu(sexMenu, input)
}

// ParseGenotype accepts a menu choice ("1" WT, "2" 5XFAD) or either name.
// Anything else is "NA".
func ParseGenotype(input string) string {
	return fromMenu(genotypeMenu, input)
}

func fromMenu(menu map[string]string, input string) string {
	input = strings.TrimSpace(input)

	if v, ok := menu[input]; ok {
		return v
	}

	for _, v := range menu {
		if strings.EqualFold(v, input) {
			return v
		}
	}

	return "NA"
}

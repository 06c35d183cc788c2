package restorerevert

import (
	"regexp"
	"unicode/utf8"
)

// backupPattern matches the names Back In Time gives preserved originals.
var backupPattern = regexp.MustCompile(`^(.+)\.backup\.([0-9]{8})$`)

// Match is a classified backup name.
type Match struct {
	Base string
	Date string
}

// Classify returns the original base name when name looks like
// "<base>.backup.YYYYMMDD".
func Classify(name string) (string, bool) {
	m, ok := ClassifyName(name)
	return m.Base, ok
}

// ClassifyName is Classify that also returns the date suffix.
func ClassifyName(name string) (Match, bool) {
	groups := backupPattern.FindStringSubmatch(name)
	if groups == nil {
		return Match{}, false
	}
	return Match{Base: groups[1], Date: groups[2]}, true
}

// validName reports whether name can be matched as text.
func validName(name string) bool {
	return utf8.ValidString(name)
}

package migration

import (
	"path/filepath"
	"regexp"
	"strings"
)

var migrationNameRe = regexp.MustCompile(`^\d{4}_.*\.py$`)

// IsMigrationFile reports whether path follows the Django migration
// naming convention: a numbered .py module under a "migrations"
// directory, excluding the package marker.
func IsMigrationFile(path string) bool {
	base := filepath.Base(path)
	if base == "__init__.py" || !migrationNameRe.MatchString(base) {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "migrations" {
			return true
		}
	}
	return false
}

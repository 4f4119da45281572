// Package idgen formats booking identifiers as ZC-<year>-<NNNN>.
//
// The four-digit space holds 10000 values per year. Neither generator checks
// issued identifiers against stored bookings, so collisions are possible
// with the random generator and after 9999 bookings with the sequential one.
package idgen

import (
	"fmt"
	"regexp"
)

const (
	Prefix = "ZC"
	Space  = 10000
)

var pattern = regexp.MustCompile(`^ZC-\d{4}-\d{4}$`)

func Format(year, n int) string {
	return fmt.Sprintf("%s-%04d-%04d", Prefix, year, n%Space)
}

func Valid(id string) bool {
	return pattern.MatchString(id)
}

// Package directory implements the admin search over students and companies.
package directory

import (
	"strconv"
	"strings"

	"github.com/Dhrumivyas20/placement-portal/internal/company"
	"github.com/Dhrumivyas20/placement-portal/internal/student"
)

// Query is a normalized search term. A blank Term matches everything.
type Query struct {
	Term string
	ID   *int64
}

// ParseQuery trims and lower-cases raw. An all-digit term also matches that exact id.
func ParseQuery(raw string) Query {
	term := strings.ToLower(strings.TrimSpace(raw))
	q := Query{Term: term}
	if term != "" && isDigits(term) {
		if id, err := strconv.ParseInt(term, 10, 64); err == nil {
			q.ID = &id
		}
	}
	return q
}

func (q Query) Blank() bool {
	return q.Term == ""
}

// Pattern is the LIKE pattern for the term with wildcard characters escaped.
func (q Query) Pattern() string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q.Term) + "%"
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

type Results struct {
	Query     string                    `json:"query"`
	Students  []*student.Student        `json:"students"`
	Companies []company.CompanyResponse `json:"companies"`
}

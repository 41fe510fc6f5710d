// Package query validates the Lucene-style search string before it is
// forwarded to the Bitbucket search API.
package query

import (
	"errors"
	"strings"
)

var ErrEmptyQuery = errors.New("search query must not be empty")

// Translate checks that the query is non-empty and passes it through
// verbatim. Filter tokens (ext:, lang:, repo:, project:, path:) and boolean
// operators (AND, OR, NOT, upper-case only) are interpreted by the remote
// index, not here. Lower-case variants are not operators on the server side;
// the translator does not correct case.
func Translate(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyQuery
	}
	return raw, nil
}

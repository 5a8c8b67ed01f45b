// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains turns a user search term into a LIKE/ILIKE pattern matching it as
// a literal substring. Backslash is the default LIKE escape character, so the
// pattern needs no ESCAPE clause.
func Contains(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

package helper

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikeContains membungkus keyword jadi pola "%kw%" untuk klausa LIKE ... ESCAPE '\'.
// % dan _ dari user dicocokkan literal.
func LikeContains(kw string) string {
	return "%" + likeEscaper.Replace(kw) + "%"
}

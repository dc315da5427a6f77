package scaffold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name-case transforms applied to module names during scaffolding. All are
// pure and total over valid module names (lowercase, letters/digits/hyphens).

// TitleCase capitalizes each hyphen-separated segment and joins them:
// "user-management" -> "UserManagement".
func TitleCase(name string) string {
	caser := cases.Title(language.English)
	segments := strings.Split(name, "-")
	for i, segment := range segments {
		segments[i] = caser.String(segment)
	}
	return strings.Join(segments, "")
}

// UpperSnake maps hyphens to underscores and uppercases:
// "user-management" -> "USER_MANAGEMENT".
func UpperSnake(name string) string {
	return strings.ToUpper(LowerSnake(name))
}

// LowerSnake maps hyphens to underscores: "user-management" -> "user_management".
func LowerSnake(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// CamelToSnake converts an entity name to lower snake case:
// "UserAccount" -> "user_account". Uppercase runs stay one word, so
// "OIDCProvider" -> "oidc_provider" and "UserID" -> "user_id".
func CamelToSnake(entity string) string {
	runes := []rune(entity)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			startsWord := i > 0 && !unicode.IsUpper(runes[i-1])
			endsAcronym := i+1 < len(runes) && unicode.IsUpper(runes[i-1]) && unicode.IsLower(runes[i+1])
			if startsWord || endsAcronym {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

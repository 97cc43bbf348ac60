package shell

import "strings"

// BashEscape escapes a string for safe use in bash double quotes.
// Newlines, tabs and carriage returns stay literal: double quotes keep
// them as-is, so eval yields the original bytes.
func BashEscape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 10)

	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '$':
			b.WriteString(`\$`)
		case '`':
			b.WriteString("\\`")
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// FishEscape escapes a string for safe use in fish shell single quotes.
// Only single quotes and backslashes are special there.
func FishEscape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 10)

	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

var dotenvEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	`$`, `\$`,
)

// DotenvEscape escapes a string for a double-quoted dotenv value.
func DotenvEscape(s string) string {
	return dotenvEscaper.Replace(s)
}

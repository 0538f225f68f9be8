package tns

// Character classification. Letters and digits are ASCII only.

func isLetter(c byte) bool { return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') }

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isAlphanumeric(c byte) bool { return isLetter(c) || isDigit(c) }

func isWhitespace(c byte) bool { return c == ' ' || c == '\t' }

// isNameChar reports whether c may appear in a service name or key.
func isNameChar(c byte) bool { return isAlphanumeric(c) || c == '.' || c == '_' }

// isTokenChar reports whether c may appear in a bare value token.
// Unlike names, tokens may contain '-'.
func isTokenChar(c byte) bool { return isNameChar(c) || c == '-' }

func isName(s string) bool { return allOf(s, isNameChar) }

func isToken(s string) bool { return allOf(s, isTokenChar) }

func allOf(s string, fn func(byte) bool) bool {
	if s == "" {
		return false
	}

	for i := range len(s) {
		if !fn(s[i]) {
			return false
		}
	}

	return true
}

// endOfLine is the only line terminator the grammar accepts by default.
const endOfLine = "\r\n"

// eolLen returns the length of the line terminator starting at input[pos],
// or 0 if there is none. A bare '\n' counts only when bareLF is set.
func eolLen(input []byte, pos int, bareLF bool) int {
	if pos < len(input) && input[pos] == '\r' &&
		pos+1 < len(input) && input[pos+1] == '\n' {
		return 2
	}

	if bareLF && pos < len(input) && input[pos] == '\n' {
		return 1
	}

	return 0
}

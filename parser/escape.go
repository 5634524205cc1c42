package parser

import "strings"

// decodeStringLiteral decodes a STRING_LITERAL's body (the text between
// the quotes, as captured by the lexer) into its byte value, applying the
// escapes n, t, b, r, f, \, ', ", a 1-3 digit octal escape, and a
// backslash-newline line continuation (which contributes no bytes).
func decodeStringLiteral(body string) []byte {
	out := make([]byte, 0, len(body))
	i := 0
	for i < len(body) {
		if body[i] != '\\' || i+1 >= len(body) {
			out = append(out, body[i])
			i++
			continue
		}

		next := body[i+1]
		switch next {
		case 'n':
			out = append(out, '\n')
			i += 2
		case 't':
			out = append(out, '\t')
			i += 2
		case 'b':
			out = append(out, '\b')
			i += 2
		case 'r':
			out = append(out, '\r')
			i += 2
		case 'f':
			out = append(out, '\f')
			i += 2
		case '\\':
			out = append(out, '\\')
			i += 2
		case '\'':
			out = append(out, '\'')
			i += 2
		case '"':
			out = append(out, '"')
			i += 2
		case '\n':
			// Line continuation: backslash-newline contributes nothing.
			i += 2
		default:
			if next >= '0' && next <= '7' {
				j := i + 1
				end := j
				for end < len(body) && end < j+3 && body[end] >= '0' && body[end] <= '7' {
					end++
				}
				val := 0
				for k := j; k < end; k++ {
					val = val*8 + int(body[k]-'0')
				}
				out = append(out, byte(val))
				i = end
				continue
			}
			// Unknown escape: keep the backslash and the character as-is.
			out = append(out, '\\', next)
			i += 2
		}
	}
	return out
}

// stripQuotes removes a single pair of surrounding double quotes, if
// present.
func stripQuotes(lexeme string) string {
	return strings.TrimPrefix(strings.TrimSuffix(lexeme, "\""), "\"")
}

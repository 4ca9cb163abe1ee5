// Package textscan finds the extent of brace-delimited blocks in page and
// script text.
package textscan

// BraceEnd returns the index one past the '}' that balances the first '{' at
// or after start. Every brace counts, including braces inside string
// literals, which matches how the decipher routines are cut out of the player
// script. It returns -1 if no '{' is found or the block never closes.
func BraceEnd(s string, start int) int {
	open := indexByteFrom(s, '{', start)
	if open < 0 {
		return -1
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// JSONObjectEnd is like BraceEnd but ignores braces inside double-quoted
// strings, honoring backslash escapes. It is used on embedded JSON where
// titles and descriptions routinely contain braces.
func JSONObjectEnd(s string, start int) int {
	open := indexByteFrom(s, '{', start)
	if open < 0 {
		return -1
	}
	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// Block returns s[open:end] for the block located by BraceEnd, and false if
// there is no balanced block.
func Block(s string, start int) (string, bool) {
	end := BraceEnd(s, start)
	if end < 0 {
		return "", false
	}
	return s[indexByteFrom(s, '{', start):end], true
}

func indexByteFrom(s string, c byte, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

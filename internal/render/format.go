package render

import "strconv"

// maxTitleChars is the character cap for the status line; longer
// metadata titles are truncated, not wrapped.
const maxTitleChars = 21

// Pad2 formats a value as a two-digit zero-padded string. Values of
// ten or more are returned unchanged.
func Pad2(v int) string {
	if v >= 0 && v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// Truncate caps a string at max characters
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

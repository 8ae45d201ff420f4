package pattern

import "regexp"

// MatchCase reports whether s matches the shell pattern pat, under the
// EntireString semantics a case clause needs (POSIX 2.10.2: each pattern is
// matched against the whole word, not a substring of it).
func MatchCase(pat, s string, mode Mode) (bool, error) {
	expr, err := Regexp(pat, mode|EntireString)
	if err != nil {
		return false, err
	}
	rx, err := regexp.Compile(expr)
	if err != nil {
		return false, err
	}
	return rx.MatchString(s), nil
}

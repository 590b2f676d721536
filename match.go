package rex

import (
	"iter"
	"math"

	"github.com/dlclark/regexp2"
)

// Search returns the first match of the pattern anywhere in s, or nil when
// nothing matches.
func (m *Matcher) Search(s string) (*regexp2.Match, error) {
	return m.search.FindStringMatch(s)
}

// Match returns a match of the pattern anchored at the start of s, or nil.
func (m *Matcher) Match(s string) (*regexp2.Match, error) {
	re, err := m.matchRegexp()
	if err != nil {
		return nil, err
	}
	return re.FindStringMatch(s)
}

// FullMatch returns a match of the pattern against all of s, or nil.
func (m *Matcher) FullMatch(s string) (*regexp2.Match, error) {
	re, err := m.fullRegexp()
	if err != nil {
		return nil, err
	}
	return re.FindStringMatch(s)
}

// MatchString reports whether the pattern matches at the start of s.
func (m *Matcher) MatchString(s string) (bool, error) {
	match, err := m.Match(s)
	return match != nil, err
}

// FullMatchString reports whether the pattern matches all of s.
func (m *Matcher) FullMatchString(s string) (bool, error) {
	match, err := m.FullMatch(s)
	return match != nil, err
}

// SearchString reports whether the pattern matches anywhere in s.
func (m *Matcher) SearchString(s string) (bool, error) {
	match, err := m.Search(s)
	return match != nil, err
}

// FindIter iterates the non-overlapping matches of the pattern in s from
// left to right. The sequence is restartable; each restart scans again.
func (m *Matcher) FindIter(s string) iter.Seq[*regexp2.Match] {
	return func(yield func(*regexp2.Match) bool) {
		match, err := m.search.FindStringMatch(s)
		for err == nil && match != nil {
			if !yield(match) {
				return
			}
			match, err = m.search.FindNextMatch(match)
		}
	}
}

// FindAll returns the text of every non-overlapping match of the pattern
// in s.
func (m *Matcher) FindAll(s string) ([]string, error) {
	var out []string
	match, err := m.search.FindStringMatch(s)
	for match != nil {
		out = append(out, match.String())
		match, err = m.search.FindNextMatch(match)
		if err != nil {
			return nil, err
		}
	}
	return out, err
}

// Replace substitutes repl for matches of the pattern in input. repl may
// use engine replacement syntax ($1, ${name}). count limits the number of
// replacements; pass -1 to replace every match.
func (m *Matcher) Replace(input, repl string, count int) (string, error) {
	return m.search.Replace(input, repl, 0, count)
}

// Split slices input around matches of the pattern. Text captured by groups
// inside the pattern is kept in the result between the surrounding pieces.
// count limits the number of matches processed; pass -1 for no limit.
func (m *Matcher) Split(input string, count int) ([]string, error) {
	if count < -1 {
		return nil, newError(CodeInvalidRepetition, "split count must be -1 or nonnegative; got %d", count)
	}
	switch count {
	case 0:
		return nil, nil
	case 1:
		return []string{input}, nil
	}
	limit := count
	if limit < 0 {
		limit = math.MaxInt
	}

	text := []rune(input)
	prior := 0
	matched := false
	var out []string

	match, err := m.search.FindStringMatch(input)
	if err != nil {
		return nil, err
	}
	for match != nil && limit > 0 {
		matched = true
		out = append(out, string(text[prior:match.Index]))
		groups := match.Groups()
		for i := 1; i < len(groups); i++ {
			out = append(out, groups[i].String())
		}
		prior = match.Index + match.Length
		limit--
		match, err = m.search.FindNextMatch(match)
		if err != nil {
			return nil, err
		}
	}
	if !matched {
		return []string{input}, nil
	}
	out = append(out, string(text[prior:]))
	return out, nil
}

// Convenience forms on the tree itself, using the memoized flagless
// matcher.

// Match matches the pattern anchored at the start of s.
func (x *Expr) Match(s string) (*regexp2.Match, error) {
	m, err := x.Matcher()
	if err != nil {
		return nil, err
	}
	return m.Match(s)
}

// Search finds the first match of the pattern anywhere in s.
func (x *Expr) Search(s string) (*regexp2.Match, error) {
	m, err := x.Matcher()
	if err != nil {
		return nil, err
	}
	return m.Search(s)
}

// FullMatch matches the pattern against all of s.
func (x *Expr) FullMatch(s string) (*regexp2.Match, error) {
	m, err := x.Matcher()
	if err != nil {
		return nil, err
	}
	return m.FullMatch(s)
}

// FindAll returns the text of every match of the pattern in s.
func (x *Expr) FindAll(s string) ([]string, error) {
	m, err := x.Matcher()
	if err != nil {
		return nil, err
	}
	return m.FindAll(s)
}

// Replace substitutes repl for matches of the pattern in input; see
// Matcher.Replace.
func (x *Expr) Replace(input, repl string, count int) (string, error) {
	m, err := x.Matcher()
	if err != nil {
		return "", err
	}
	return m.Replace(input, repl, count)
}

// Split slices input around matches of the pattern; see Matcher.Split.
func (x *Expr) Split(input string, count int) ([]string, error) {
	m, err := x.Matcher()
	if err != nil {
		return nil, err
	}
	return m.Split(input, count)
}

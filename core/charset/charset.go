package charset

import (
	"sort"
	"unicode"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/fontbake/fontbake/core"
	"golang.org/x/text/unicode/norm"
)

// Set is an insertion-ordered set of characters for one language tag.
type Set struct {
	lang  string
	runes *linkedhashset.Set
}

// New creates an empty character set for a language tag.
func New(lang string) *Set {
	return &Set{
		lang:  lang,
		runes: linkedhashset.New(),
	}
}

// Lang returns the language tag of this set.
func (s *Set) Lang() string {
	return s.lang
}

// Add normalizes every character of chars to NFKC and appends it to the
// set, keeping insertion order. Characters whose normalization expands to
// more than one code point (e.g. "ﬁ") are rejected with EINVALID.
func (s *Set) Add(chars string) error {
	for _, c := range chars {
		n := []rune(norm.NFKC.String(string(c)))
		if len(n) != 1 {
			return core.Error(core.EINVALID,
				"character %q does not normalize to a single code point", c)
		}
		s.runes.Add(n[0])
	}
	return nil
}

// Contains checks set membership.
func (s *Set) Contains(c rune) bool {
	return s.runes.Contains(c)
}

// Size returns the number of characters in the set.
func (s *Set) Size() int {
	return s.runes.Size()
}

// Runes returns the characters of the set in insertion order.
func (s *Set) Runes() []rune {
	values := s.runes.Values()
	runes := make([]rune, len(values))
	for i, v := range values {
		runes[i] = v.(rune)
	}
	return runes
}

// upperOverrides enumerates characters exempt from the usual uppercase
// mapping. German 'ß' has no 1:1 uppercase form and passes through
// unchanged.
var upperOverrides = map[rune]rune{
	'ß': 'ß',
}

// ToUpper maps a character to its uppercase form for upper-only font
// variants, honoring the override table.
func ToUpper(c rune) rune {
	if o, ok := upperOverrides[c]; ok {
		return o
	}
	return unicode.ToUpper(c)
}

// ForLanguage returns the built-in character set for a language tag, or an
// EMISSING error for unknown tags.
func ForLanguage(tag string) (*Set, error) {
	chars, ok := languages[tag]
	if !ok {
		tracer().Errorf("no character set for language %s", tag)
		return nil, core.Error(core.EMISSING, "no character set for language %s", tag)
	}
	s := New(tag)
	if err := s.Add(chars); err != nil {
		return nil, err
	}
	return s, nil
}

// Languages lists all built-in language tags, sorted.
func Languages() []string {
	tags := make([]string, 0, len(languages))
	for tag := range languages {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

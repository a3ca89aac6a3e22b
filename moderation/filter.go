// Package moderation masks configured words in message text before it is displayed.
// The filter is presentation only: the stored and transmitted text is never changed.
package moderation

import (
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

type Filter struct {
	machine *goahocorasick.Machine
	mask    rune
}

// folded is the searchable form of a text and, for each searchable rune,
// its index in the original text.
type folded struct {
	runes []rune
	index []int
}

// NewFilter builds the matcher once. Words that fold to nothing are ignored;
// with no usable word the filter returns every text unchanged.
func NewFilter(words []string, mask rune) (*Filter, error) {
	patterns := lo.FilterMap(words, func(word string, _ int) ([]rune, bool) {
		pattern := fold(strings.TrimSpace(word)).runes
		return pattern, len(pattern) > 0
	})
	if len(patterns) == 0 {
		return &Filter{mask: mask}, nil
	}
	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, err
	}
	return &Filter{machine: machine, mask: mask}, nil
}

// Mask replaces every matched word with the mask rune, one mask per original rune.
// Matching ignores case, punctuation between letters and common digit substitutions.
func (f *Filter) Mask(text string) string {
	if f == nil || f.machine == nil || text == "" {
		return text
	}
	search := fold(text)
	if len(search.runes) == 0 {
		return text
	}
	terms := f.machine.MultiPatternSearch(search.runes, false)
	if len(terms) == 0 {
		return text
	}

	out := []rune(text)
	for _, term := range terms {
		last := term.Pos + len(term.Word) - 1
		if term.Pos < 0 || last >= len(search.index) {
			continue
		}
		for i := search.index[term.Pos]; i <= search.index[last]; i++ {
			out[i] = f.mask
		}
	}
	return string(out)
}

func fold(text string) folded {
	original := []rune(text)
	result := folded{runes: make([]rune, 0, len(original)), index: make([]int, 0, len(original))}
	for i, r := range original {
		r = unleet(r)
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		result.runes = append(result.runes, unicode.ToLower(r))
		result.index = append(result.index, i)
	}
	return result
}

func unleet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3':
		return 'e'
	case '1', '!':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	}
	return r
}

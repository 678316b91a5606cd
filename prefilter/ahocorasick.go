package prefilter

import (
	"slices"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/powerset/literal"
)

// ahoCorasickPrefilter searches for any of several literals at once.
//
// The automaton runs over UTF-8 bytes. Find encodes the rune haystack and
// keeps the byte offset of every rune, so the byte position the automaton
// reports maps back to a rune index.
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	patterns int
	bytes    int
}

func newAhoCorasickPrefilter(seq *literal.Seq) (Prefilter, error) {
	builder := ahocorasick.NewBuilder()
	size := 0
	for i := 0; i < seq.Len(); i++ {
		b := []byte(string(seq.Get(i).Runes))
		size += len(b)
		builder.AddPattern(b)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &ahoCorasickPrefilter{
		auto:     auto,
		patterns: seq.Len(),
		bytes:    size,
	}, nil
}

func (p *ahoCorasickPrefilter) Find(haystack []rune, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}

	buf := make([]byte, 0, len(haystack)-start)
	offsets := make([]int, 0, len(haystack)-start)
	for _, r := range haystack[start:] {
		offsets = append(offsets, len(buf))
		buf = utf8.AppendRune(buf, r)
	}

	m := p.auto.Find(buf, 0)
	if m == nil {
		return -1
	}
	// Matches always begin on a rune boundary: every pattern is valid UTF-8.
	idx, _ := slices.BinarySearch(offsets, m.Start)
	return start + idx
}

// IsMatch reports whether any literal occurs in haystack.
func (p *ahoCorasickPrefilter) IsMatch(haystack []byte) bool {
	return p.auto.IsMatch(haystack)
}

func (p *ahoCorasickPrefilter) IsComplete() bool {
	return false
}

func (p *ahoCorasickPrefilter) LiteralLen() int {
	return 0
}

func (p *ahoCorasickPrefilter) HeapBytes() int {
	return p.bytes + p.patterns*8
}

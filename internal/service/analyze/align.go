package analyze

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/derdiedas/backend/internal/domain"
)

// span is a half-open [start, end) byte interval in the source text.
type span struct {
	start int
	end   int
}

// spanSet tracks claimed intervals so no two records are ever anchored to
// overlapping text. One set is shared by the noun and article passes of a
// single request.
type spanSet []span

func (s spanSet) overlaps(start, end int) bool {
	for _, sp := range s {
		if start < sp.end && sp.start < end {
			return true
		}
	}
	return false
}

func (s *spanSet) claim(start, end int) {
	*s = append(*s, span{start: start, end: end})
}

// foldForSearch lowercases s rune by rune, keeping any rune whose lowered
// form has a different encoded length. Byte offsets into the result are
// therefore always valid offsets into s.
func foldForSearch(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		lower := unicode.ToLower(r)
		if utf8.RuneLen(lower) != utf8.RuneLen(r) {
			lower = r
		}
		b.WriteRune(lower)
	}
	return b.String()
}

// findFreeSpan locates the leftmost occurrence of word in foldedText whose
// span is not yet claimed. When no exact occurrence is free it retries with
// surrounding punctuation stripped from the word, this time requiring word
// boundaries so a short remnant cannot land inside a longer word.
func findFreeSpan(foldedText, word string, used spanSet) (span, bool) {
	needle := foldForSearch(word)
	if needle == "" {
		return span{}, false
	}
	if sp, ok := scan(foldedText, needle, used, false); ok {
		return sp, true
	}

	trimmed := strings.TrimFunc(needle, unicode.IsPunct)
	if trimmed == "" || trimmed == needle {
		return span{}, false
	}
	return scan(foldedText, trimmed, used, true)
}

func scan(text, needle string, used spanSet, bounded bool) (span, bool) {
	for cursor := 0; cursor <= len(text); {
		i := strings.Index(text[cursor:], needle)
		if i < 0 {
			return span{}, false
		}
		start := cursor + i
		end := start + len(needle)
		if (!bounded || atWordBoundary(text, start, end)) && !used.overlaps(start, end) {
			return span{start: start, end: end}, true
		}
		cursor = start + 1
	}
	return span{}, false
}

func atWordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// alignNouns anchors each noun to a unique byte offset in text, claiming its
// span in used. Nouns with no free matching span are dropped. The result is
// sorted ascending by position; the sort is stable so an (impossible) tie
// would preserve input order.
func alignNouns(nouns []domain.Noun, text string, used *spanSet) ([]domain.Noun, int) {
	folded := foldForSearch(text)
	placed := make([]domain.Noun, 0, len(nouns))
	dropped := 0
	for _, n := range nouns {
		sp, ok := findFreeSpan(folded, n.Original, *used)
		if !ok {
			dropped++
			continue
		}
		used.claim(sp.start, sp.end)
		n.Position = sp.start
		placed = append(placed, n)
	}
	sort.SliceStable(placed, func(i, j int) bool { return placed[i].Position < placed[j].Position })
	return placed, dropped
}

// alignArticles is the article pass. It shares the used set with the noun
// pass so an article can never claim text already claimed by a noun.
func alignArticles(articles []domain.Article, text string, used *spanSet) ([]domain.Article, int) {
	folded := foldForSearch(text)
	placed := make([]domain.Article, 0, len(articles))
	dropped := 0
	for _, a := range articles {
		sp, ok := findFreeSpan(folded, a.Original, *used)
		if !ok {
			dropped++
			continue
		}
		used.claim(sp.start, sp.end)
		a.Position = sp.start
		placed = append(placed, a)
	}
	sort.SliceStable(placed, func(i, j int) bool { return placed[i].Position < placed[j].Position })
	return placed, dropped
}

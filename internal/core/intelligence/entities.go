package intelligence

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/doclens/internal/core/domain"
	"github.com/kirillkom/doclens/internal/core/simulated"
	"github.com/kirillkom/doclens/internal/knowledge"
)

const DefaultEntityLimit = 20

const monthNames = "January|February|March|April|May|June|July|August|September|October|November|December"

type entityPattern struct {
	kind domain.EntityType
	re   *regexp.Regexp
}

// EntityExtractor is a fixed-vocabulary regex recognizer.
type EntityExtractor struct {
	patterns []entityPattern
	scorer   simulated.Scorer
	limit    int
}

func NewEntityExtractor(lists knowledge.EntityLists, scorer simulated.Scorer, limit int) *EntityExtractor {
	if limit <= 0 {
		limit = DefaultEntityLimit
	}

	e := &EntityExtractor{scorer: scorer, limit: limit}
	e.add(domain.EntityPerson, `\b[A-Z][a-z]+ [A-Z][a-z]+\b`)
	e.add(domain.EntityOrg, phrasePattern(lists.OrganizationSuffixes))
	e.add(domain.EntityDate, `(?i)\b(?:\d{1,2}/\d{1,2}/\d{4}|\d{4}-\d{2}-\d{2}|(?:`+monthNames+`)\s+\d{1,2},?\s+\d{4})\b`)
	e.add(domain.EntityLegalTerm, phrasePattern(lists.LegalTerms))
	e.add(domain.EntityMedicalTerm, phrasePattern(lists.MedicalTerms))
	e.add(domain.EntityTechnicalTerm, phrasePattern(lists.TechnicalTerms))
	e.add(domain.EntityMoney, `\$[\d,]+(?:\.\d{2})?`)
	if suffixes := alternation(lists.LocationSuffixes); suffixes != "" {
		e.add(domain.EntityLocation, `\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:`+suffixes+`)\b`)
	}
	return e
}

func (e *EntityExtractor) add(kind domain.EntityType, pattern string) {
	if pattern == "" {
		return
	}
	e.patterns = append(e.patterns, entityPattern{kind: kind, re: regexp.MustCompile(pattern)})
}

// Extract pools matches of every pattern, keeps the first occurrence of each
// (text, type) pair, orders by start offset and truncates to the limit.
func (e *EntityExtractor) Extract(text string) []domain.ExtractedEntity {
	if text == "" {
		return nil
	}

	type key struct {
		text string
		kind domain.EntityType
	}
	seen := make(map[key]struct{})
	var out []domain.ExtractedEntity
	offsets := newRuneOffsets(text)

	for _, p := range e.patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			match := text[loc[0]:loc[1]]
			k := key{text: match, kind: p.kind}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, domain.ExtractedEntity{
				Text:       match,
				Type:       p.kind,
				StartIndex: offsets.at(loc[0]),
				EndIndex:   offsets.at(loc[1]),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].StartIndex < out[j].StartIndex })
	if len(out) > e.limit {
		out = out[:e.limit]
	}
	for i := range out {
		out[i].Confidence = e.scorer.Between(80, 99)
	}
	return out
}

// phrasePattern builds a case-insensitive alternation over literal phrases.
// A trailing \b is added only after phrases that end in a word character.
func phrasePattern(phrases []string) string {
	alts := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		alt := regexp.QuoteMeta(phrase)
		if last, _ := utf8.DecodeLastRuneInString(phrase); isASCIIWord(last) {
			alt += `\b`
		}
		alts = append(alts, alt)
	}
	if len(alts) == 0 {
		return ""
	}
	return `(?i)\b(?:` + strings.Join(alts, "|") + `)`
}

func alternation(words []string) string {
	alts := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			alts = append(alts, regexp.QuoteMeta(w))
		}
	}
	return strings.Join(alts, "|")
}

func isASCIIWord(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// runeOffsets converts byte offsets into rune offsets, resuming from the
// previous conversion while offsets ascend.
type runeOffsets struct {
	text     string
	lastByte int
	lastRune int
}

func newRuneOffsets(text string) *runeOffsets {
	return &runeOffsets{text: text}
}

func (o *runeOffsets) at(byteOffset int) int {
	if byteOffset < o.lastByte {
		o.lastByte, o.lastRune = 0, 0
	}
	o.lastRune += utf8.RuneCountInString(o.text[o.lastByte:byteOffset])
	o.lastByte = byteOffset
	return o.lastRune
}

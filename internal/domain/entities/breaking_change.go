package entities

import (
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// BreakingClassification is the evidentiary tier of a breaking-change verdict.
type BreakingClassification string

const (
	BreakingConfirmed BreakingClassification = "confirmed"
	BreakingLikely    BreakingClassification = "likely"
	BreakingPossible  BreakingClassification = "possible"
	BreakingUnknown   BreakingClassification = "unknown"
)

// BreakingSignals carries the matched evidence snippets per strength tier.
// Negated is true only when a negation phrase was found and no positive
// evidence of any tier survived.
type BreakingSignals struct {
	Strong  []string `json:"strong"`
	Medium  []string `json:"medium"`
	Weak    []string `json:"weak"`
	Negated bool     `json:"negated"`
}

// BreakingChangeVerdict is the classifier output for one piece of
// release-note text.
type BreakingChangeVerdict struct {
	Classification BreakingClassification `json:"classification"`
	Confidence     float64                `json:"confidence"`
	Signals        BreakingSignals        `json:"signals"`
}

const (
	// negationWindow is the maximum character distance at which a negation
	// phrase suppresses a positive match ("no breaking changes" must not
	// register as a breaking signal).
	negationWindow = 50

	// subsumptionWindow is the local window in which a weak match is treated
	// as part of an overlapping strong or medium match, so one sentence is
	// not counted twice.
	subsumptionWindow = 20

	// snippetBefore and snippetAfter bound the evidence snippet kept around
	// a match for explainability.
	snippetBefore = 10
	snippetAfter  = 40

	strongWeight = 3
	mediumWeight = 2
	weakWeight   = 1
)

// Pattern tiers, strongest first. Each tier contributes at most once to
// the score regardless of how many of its patterns match.
var (
	strongPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)breaking\s+change:`),
		regexp.MustCompile(`(?i)breaking\s+changes:`),
		regexp.MustCompile(`(?i)breaking:`),
		regexp.MustCompile(`(?i)⚠️\s*breaking`),
		regexp.MustCompile(`(?i)⚠\s*breaking`),
		regexp.MustCompile(`(?i)\[breaking\]`),
		regexp.MustCompile(`(?i)\(breaking\)`),
		regexp.MustCompile(`(?im)^breaking\s+changes?$`),
		regexp.MustCompile(`(?im)^breaking$`),
		regexp.MustCompile(`(?im)breaking\s+changes?\s*$`),
	}

	mediumPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)introduces\s+breaking`),
		regexp.MustCompile(`(?i)incompatible\s+change`),
		regexp.MustCompile(`(?i)removed\s+support\s+for`),
		regexp.MustCompile(`(?i)api\s+has\s+changed`),
		regexp.MustCompile(`(?i)api\s+changes`),
		regexp.MustCompile(`(?i)backward\s+incompatible`),
		regexp.MustCompile(`(?i)not\s+backwards?\s+compatible`),
		regexp.MustCompile(`(?i)requires\s+migration`),
		regexp.MustCompile(`(?i)migration\s+required`),
		regexp.MustCompile(`(?i)breaking\s+changes?\s+in`),
		regexp.MustCompile(`(?i)breaking\s+changes?`),
	}

	weakPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bbreaking\b`),
		regexp.MustCompile(`(?i)\bbreaks\b`),
		regexp.MustCompile(`(?i)\b(?:may|could|might)\s+break\b`),
	}

	negationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)no\s+breaking\s+changes?`),
		regexp.MustCompile(`(?i)without\s+breaking`),
		regexp.MustCompile(`(?i)non-breaking`),
		regexp.MustCompile(`(?i)non\s+breaking`),
		regexp.MustCompile(`(?i)not\s+a\s+breaking\s+change`),
		regexp.MustCompile(`(?i)not\s+breaking`),
		regexp.MustCompile(`(?i)no\s+breaking`),
		regexp.MustCompile(`(?i)breaking\s+change\s+free`),
	}
)

// UnknownVerdict is the default verdict for missing or unusable evidence.
func UnknownVerdict() BreakingChangeVerdict {
	return BreakingChangeVerdict{
		Classification: BreakingUnknown,
		Confidence:     0,
		Signals: BreakingSignals{
			Strong: []string{},
			Medium: []string{},
			Weak:   []string{},
		},
	}
}

// ClassifyBreakingChange scores free text for breaking-change evidence.
// It is a pure function: the same text always yields the same verdict.
// Negation acts only as a match suppressor, never as a score deduction.
func ClassifyBreakingChange(text string) BreakingChangeVerdict {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return UnknownVerdict()
	}

	negationAt := negationOffsets(trimmed)

	strong := collectMatches(trimmed, strongPatterns, negationAt, nil)
	medium := collectMatches(trimmed, mediumPatterns, negationAt, nil)
	weak := collectMatches(trimmed, weakPatterns, negationAt,
		append(append([]*regexp.Regexp{}, strongPatterns...), mediumPatterns...))

	score := 0
	if len(strong) > 0 {
		score += strongWeight
	}
	if len(medium) > 0 {
		score += mediumWeight
	}
	if len(weak) > 0 {
		score += weakWeight
	}

	classification, confidence := classifyScore(score)
	hasPositiveEvidence := len(strong)+len(medium)+len(weak) > 0

	return BreakingChangeVerdict{
		Classification: classification,
		Confidence:     clamp01(confidence),
		Signals: BreakingSignals{
			Strong:  strong,
			Medium:  medium,
			Weak:    weak,
			Negated: len(negationAt) > 0 && !hasPositiveEvidence,
		},
	}
}

func classifyScore(score int) (BreakingClassification, float64) {
	switch {
	case score >= 3:
		return BreakingConfirmed, math.Min(0.8+float64(score-3)*0.05, 1.0)
	case score == 2:
		return BreakingLikely, 0.6
	case score == 1:
		return BreakingPossible, 0.3
	default:
		return BreakingUnknown, math.Max(0, 0.1+float64(score)*0.05)
	}
}

// negationOffsets returns the first match offset of every negation phrase.
func negationOffsets(text string) []int {
	var offsets []int
	for _, pattern := range negationPatterns {
		if loc := pattern.FindStringIndex(text); loc != nil {
			offsets = append(offsets, loc[0])
		}
	}
	return offsets
}

// collectMatches finds the first occurrence of each pattern, drops matches
// that are negated nearby or subsumed by a stronger tier, and returns the
// deduplicated evidence snippets.
func collectMatches(
	text string,
	patterns []*regexp.Regexp,
	negationAt []int,
	strongerTiers []*regexp.Regexp,
) []string {
	snippets := []string{}
	for _, pattern := range patterns {
		loc := pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if subsumedByStronger(text, loc[0], strongerTiers) {
			continue
		}
		if negatedNearby(loc[0], negationAt) {
			continue
		}
		snippet := evidenceSnippet(text, loc)
		if !slices.Contains(snippets, snippet) {
			snippets = append(snippets, snippet)
		}
	}
	return snippets
}

func negatedNearby(at int, negationAt []int) bool {
	for _, offset := range negationAt {
		distance := at - offset
		if distance < 0 {
			distance = -distance
		}
		if distance < negationWindow {
			return true
		}
	}
	return false
}

func subsumedByStronger(text string, at int, strongerTiers []*regexp.Regexp) bool {
	if len(strongerTiers) == 0 {
		return false
	}
	window := text[snippetCut(text, at-subsumptionWindow):snippetCut(text, at+subsumptionWindow)]
	for _, pattern := range strongerTiers {
		if pattern.MatchString(window) {
			return true
		}
	}
	return false
}

func evidenceSnippet(text string, loc []int) string {
	start := snippetCut(text, loc[0]-snippetBefore)
	end := snippetCut(text, loc[1]+snippetAfter)
	return strings.TrimSpace(text[start:end])
}

// snippetCut bounds index to the text and backs it up to a rune
// boundary, so a window edge never splits a multi-byte character.
func snippetCut(text string, index int) int {
	if index < 0 {
		return 0
	}
	if index > len(text) {
		return len(text)
	}
	for index > 0 && index < len(text) && !utf8.RuneStart(text[index]) {
		index--
	}
	return index
}

func clamp01(value float64) float64 {
	return math.Max(0, math.Min(1, value))
}

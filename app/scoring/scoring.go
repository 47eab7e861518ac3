// Package scoring classifies issue difficulty with a label and keyword
// heuristic. The rule order, adjustment magnitudes, and thresholds are a
// contract: changing any of them reclassifies issues across the board.
package scoring

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"issuecomb/app/issue"
)

type Input struct {
	Title          string
	Body           string
	Labels         []string
	BeginnerLabels []string
}

var fold = cases.Fold()

// Label patterns shared across platforms. The beginner pattern only fires
// when no project-declared beginner label matched.
var (
	beginnerLabelRe     = regexp.MustCompile(`good.?first.?issue|beginner|easy|starter|newcomer|first.?timer|low.?hanging|help.?wanted|junior|simple`)
	intermediateLabelRe = regexp.MustCompile(`intermediate|medium|moderate`)
	advancedLabelRe     = regexp.MustCompile(`advanced|hard|difficult|expert|complex`)
)

type textRule struct {
	signal  string
	match   *regexp.Regexp
	exclude *regexp.Regexp
	delta   int
}

// Free-text rules, applied in order over lowercased title+body. All
// applicable rules fire; there is no precedence between them.
var textRules = []textRule{
	{"typo-fix", regexp.MustCompile(`\b(typo|spelling|grammar|misspell)`), nil, -20},
	{"docs", regexp.MustCompile(`\b(doc(s|umentation)?|readme|comment)`), nil, -15},
	{"style-fix", regexp.MustCompile(`\b(lint(ing)?|format(ting)?|style|prettier|eslint)`), nil, -15},
	{"test-addition", regexp.MustCompile(`\b(add(ing)?.?test|test.?coverage|unit.?test)`), regexp.MustCompile(`\btest.*(fail|break|flak)`), -10},
	{"single-file", regexp.MustCompile(`\b(single.?file|one.?file|in.?\w+\.(ts|js|py|go|rs|c|cpp|java|rb))\b`), nil, -10},
	{"example-code", regexp.MustCompile(`\b(example|sample|demo|tutorial)`), nil, -10},
	{"translation", regexp.MustCompile(`\b(translat|i18n|l10n|locali[sz])`), nil, -10},
	{"refactor", regexp.MustCompile(`\b(refactor|restructur|redesign|architect)`), nil, 20},
	{"breaking-change", regexp.MustCompile(`\b(breaking.?change|rfc|proposal|deprecat)`), nil, 25},
	{"security", regexp.MustCompile(`\b(security|vulnerabilit|cve|exploit|injection|xss|csrf)`), nil, 20},
	{"performance", regexp.MustCompile(`\b(performance|optimi[sz]e|benchmark|profil|slow|fast)`), nil, 15},
	{"concurrency", regexp.MustCompile(`\b(memory.?leak|thread.?safe|deadlock|race.?condition|concurren)`), nil, 25},
	{"core-changes", regexp.MustCompile(`\b(core|internal|engine|kernel|runtime)`), nil, 15},
	{"api-design", regexp.MustCompile(`\b(api.?design|public.?api|interface.?change)`), nil, 15},
	{"compatibility", regexp.MustCompile(`\b(backward.?compat|migration|upgrade.?path)`), nil, 15},
}

// Score classifies an issue. Pure and deterministic: same input, same
// result, no I/O, never fails.
func Score(in Input) issue.ScoringResult {
	score := 50 // neutral
	signals := []string{}

	foldedLabels := make([]string, len(in.Labels))
	for i, l := range in.Labels {
		foldedLabels[i] = fold.String(l)
	}
	text := strings.ToLower(in.Title + " " + in.Body)

	// Label signals first, they are the strongest. A project-declared
	// beginner label suppresses the generic beginner pattern; the
	// intermediate and advanced patterns fire independently.
	hasProjectBeginnerLabel := false
	for _, bl := range in.BeginnerLabels {
		folded := fold.String(bl)
		for _, l := range foldedLabels {
			if strings.Contains(l, folded) {
				hasProjectBeginnerLabel = true
				break
			}
		}
		if hasProjectBeginnerLabel {
			break
		}
	}
	if hasProjectBeginnerLabel {
		score -= 30
		signals = append(signals, "project-beginner-label")
	}

	if !hasProjectBeginnerLabel && anyLabelMatches(foldedLabels, beginnerLabelRe) {
		score -= 25
		signals = append(signals, "beginner-label-pattern")
	}

	if anyLabelMatches(foldedLabels, intermediateLabelRe) {
		score += 10
		signals = append(signals, "intermediate-label")
	}

	if anyLabelMatches(foldedLabels, advancedLabelRe) {
		score += 25
		signals = append(signals, "advanced-label")
	}

	for _, rule := range textRules {
		if !rule.match.MatchString(text) {
			continue
		}
		if rule.exclude != nil && rule.exclude.MatchString(text) {
			continue
		}
		score += rule.delta
		signals = append(signals, rule.signal)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return issue.ScoringResult{
		Difficulty: difficultyFor(score),
		Score:      score,
		Signals:    signals,
	}
}

func anyLabelMatches(labels []string, re *regexp.Regexp) bool {
	for _, l := range labels {
		if re.MatchString(l) {
			return true
		}
	}
	return false
}

func difficultyFor(score int) issue.Difficulty {
	switch {
	case score <= 30:
		return issue.DifficultyBeginner
	case score <= 55:
		return issue.DifficultyIntermediate
	case score <= 80:
		return issue.DifficultyAdvanced
	default:
		return issue.DifficultyUnknown
	}
}

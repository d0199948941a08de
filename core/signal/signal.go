// Package signal holds the commit-message keyword tables and the classifier
// that matches messages against them.
package signal

import (
	"regexp"

	"github.com/huangsam/debtscope/schema"
)

// Each table maps a human-readable signal name to a case-insensitive pattern.
// Patterns use word boundaries so "fix" does not match "prefix"; the "why"
// frustration signal is anchored to the start of the message.

// debtPatterns are textual proxies for acknowledged technical debt.
var debtPatterns = map[string]*regexp.Regexp{
	"todo":       regexp.MustCompile(`(?i)\bTODO\b`),
	"fixme":      regexp.MustCompile(`(?i)\bFIXME\b`),
	"hack":       regexp.MustCompile(`(?i)\bHACK\b`),
	"xxx":        regexp.MustCompile(`(?i)\bXXX\b`),
	"temporary":  regexp.MustCompile(`(?i)\btemporar(y|ily)\b`),
	"workaround": regexp.MustCompile(`(?i)\bworkaround\b`),
	"kludge":     regexp.MustCompile(`(?i)\bkludge\b`),
	"broken":     regexp.MustCompile(`(?i)\bbroken\b`),
	"ugly":       regexp.MustCompile(`(?i)\bugly\b`),
	"dirty":      regexp.MustCompile(`(?i)\bdirty\b`),
	"tech.debt":  regexp.MustCompile(`(?i)\btech(nical)?\s*debt\b`),
}

// bugPatterns indicate bug-fixing activity.
var bugPatterns = map[string]*regexp.Regexp{
	"fix":     regexp.MustCompile(`(?i)\bfix(e[sd])?\b`),
	"bug":     regexp.MustCompile(`(?i)\bbug\b`),
	"issue":   regexp.MustCompile(`(?i)\bissue\b`),
	"patch":   regexp.MustCompile(`(?i)\bpatch\b`),
	"hotfix":  regexp.MustCompile(`(?i)\bhotfix\b`),
	"resolve": regexp.MustCompile(`(?i)\bresolv(e[sd]?|ing)\b`),
	"repair":  regexp.MustCompile(`(?i)\brepair\b`),
}

// revertPatterns indicate work being undone.
var revertPatterns = map[string]*regexp.Regexp{
	"revert":   regexp.MustCompile(`(?i)\brevert\b`),
	"undo":     regexp.MustCompile(`(?i)\bundo\b`),
	"rollback": regexp.MustCompile(`(?i)\brollback\b`),
	"back.out": regexp.MustCompile(`(?i)\bback(ed|ing)?\s*out\b`),
}

// frustrationPatterns capture emotional venting in messages.
var frustrationPatterns = map[string]*regexp.Regexp{
	"finally":   regexp.MustCompile(`(?i)\bfinally\b`),
	"stupid":    regexp.MustCompile(`(?i)\bstupid\b`),
	"wtf":       regexp.MustCompile(`(?i)\bwtf\b`),
	"why":       regexp.MustCompile(`(?i)^why\b`),
	"ugh":       regexp.MustCompile(`(?i)\bu+gh+\b`),
	"argh":      regexp.MustCompile(`(?i)\ba+rgh+\b`),
	"damn":      regexp.MustCompile(`(?i)\bdamn\b`),
	"crap":      regexp.MustCompile(`(?i)\bcrap\b`),
	"cmon":      regexp.MustCompile(`(?i)\bc'?mon\b`),
	"ffs":       regexp.MustCompile(`(?i)\bffs\b`),
	"sigh":      regexp.MustCompile(`(?i)\bsigh\b`),
	"hate":      regexp.MustCompile(`(?i)\bhate\b`),
	"horrible":  regexp.MustCompile(`(?i)\bhorrible\b`),
	"terrible":  regexp.MustCompile(`(?i)\bterrible\b`),
	"nightmare": regexp.MustCompile(`(?i)\bnightmare\b`),
}

// positivePatterns capture cleanup and improvement work.
var positivePatterns = map[string]*regexp.Regexp{
	"improve":  regexp.MustCompile(`(?i)\bimprov(e[sd]?|ing|ement)\b`),
	"enhance":  regexp.MustCompile(`(?i)\benhance[sd]?\b`),
	"optimize": regexp.MustCompile(`(?i)\boptimiz(e[sd]?|ation)\b`),
	"refactor": regexp.MustCompile(`(?i)\brefactor(ed|ing)?\b`),
	"clean":    regexp.MustCompile(`(?i)\bclean(ed|ing|up)?\b`),
	"simplify": regexp.MustCompile(`(?i)\bsimplif(y|ied|ies)\b`),
}

// tables maps each category to its pattern table, in report order.
var tables = map[schema.SignalCategory]map[string]*regexp.Regexp{
	schema.DebtSignals:        debtPatterns,
	schema.BugSignals:         bugPatterns,
	schema.RevertSignals:      revertPatterns,
	schema.FrustrationSignals: frustrationPatterns,
	schema.PositiveSignals:    positivePatterns,
}

// CategoryHints gives the short keyword summary shown next to each category
// in reports.
var CategoryHints = map[schema.SignalCategory]string{
	schema.DebtSignals:        "TODO, FIXME, HACK, etc.",
	schema.BugSignals:         "fix, bug, issue, patch",
	schema.RevertSignals:      "revert, undo, rollback",
	schema.FrustrationSignals: "finally, wtf, ugh, etc.",
	schema.PositiveSignals:    "improve, refactor, clean",
}

// Classify matches a commit message against every table and returns the
// triggered signal names per category. Each signal counts at most once per
// message regardless of how many times the pattern matches.
func Classify(message string) map[schema.SignalCategory]map[string]int {
	hits := make(map[schema.SignalCategory]map[string]int, len(tables))
	for cat, patterns := range tables {
		hits[cat] = make(map[string]int)
		for name, re := range patterns {
			if re.MatchString(message) {
				hits[cat][name] = 1
			}
		}
	}
	return hits
}

package moderation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	DefaultTweetMaxLen   = 280
	DefaultCommentMaxLen = 500
)

// Result is what every write path checks before persisting anything. Err is
// surfaced to the user verbatim, so its message has to stand on its own.
// Sanitized is only populated when Valid is true.
type Result struct {
	Valid     bool
	Sanitized string
	Err       error
}

func invalid(err error) Result {
	return Result{Valid: false, Err: err}
}

// Gate runs the full content-acceptability pipeline: sanitization, length,
// spam heuristics and the prohibited-word check. It is pure after
// construction; the word list is fixed for the process lifetime.
type Gate struct {
	badWords    []*regexp.Regexp
	spamPhrases []string
}

func New(words []string) *Gate {
	g := &Gate{
		spamPhrases: spamPhrases,
	}
	for _, w := range words {
		w = strings.TrimSpace(strings.ToLower(w))
		if w == "" {
			continue
		}
		g.badWords = append(g.badWords, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return g
}

// Validate runs the pipeline over content alone. First failure wins.
func (g *Gate) Validate(raw string, maxLen int) Result {
	return g.validate(raw, maxLen, "")
}

// ValidatePost additionally runs the prohibited-word check over the
// concatenation of content, author and handle, so a clean tweet with an
// offensive display name is still rejected.
func (g *Gate) ValidatePost(raw string, author string, handle string, maxLen int) Result {
	return g.validate(raw, maxLen, author+" "+handle)
}

func (g *Gate) validate(raw string, maxLen int, identity string) Result {
	if strings.TrimSpace(raw) == "" {
		return invalid(ErrEmptyContent)
	}

	sanitized := Sanitize(raw)
	if sanitized == "" {
		return invalid(ErrEmptyContent)
	}

	if maxLen > 0 && len([]rune(sanitized)) > maxLen {
		return invalid(fmt.Errorf("%w: content exceeds %d characters", ErrTooLong, maxLen))
	}

	if err := g.checkSpam(sanitized); err != nil {
		return invalid(err)
	}

	if g.ContainsBadWords(sanitized + " " + identity) {
		return invalid(ErrProhibitedWord)
	}

	return Result{Valid: true, Sanitized: sanitized}
}

// ContainsBadWords tests for whole-word, case-insensitive matches against the
// configured list. This is the only check the moderation sweep applies.
func (g *Gate) ContainsBadWords(s string) bool {
	for _, re := range g.badWords {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func (g *Gate) checkSpam(s string) error {
	lower := strings.ToLower(s)
	for _, phrase := range g.spamPhrases {
		if strings.Contains(lower, phrase) {
			return fmt.Errorf("%w: contains spam phrase %q", ErrSpamHeuristic, phrase)
		}
	}

	if hasRepeatedRun(s, 5) {
		return fmt.Errorf("%w: too many repeated characters", ErrSpamHeuristic)
	}

	if words := strings.Fields(s); len(words) >= 3 {
		if uppercaseRatio(s) > 0.7 {
			return fmt.Errorf("%w: excessive capitalization", ErrSpamHeuristic)
		}
	}

	if strings.Count(lower, "http://")+strings.Count(lower, "https://") > 3 {
		return fmt.Errorf("%w: too many links", ErrSpamHeuristic)
	}

	return nil
}

// hasRepeatedRun reports whether s contains n or more consecutive identical
// runes. RE2 has no backreferences, so this is a plain scan.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run >= n {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

func uppercaseRatio(s string) float64 {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0
	}
	upper := 0
	for _, r := range runes {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(len(runes))
}

var (
	tagRe       = regexp.MustCompile(`<[^>]*>`)
	jsSchemeRe  = regexp.MustCompile(`(?i)javascript:`)
	eventAttrRe = regexp.MustCompile(`(?i)\bon\w+\s*=`)
)

// Sanitize reduces raw input to its canonical plain-text form: no markup, no
// javascript: scheme, no inline handler patterns. Each pattern is stripped to
// a fixpoint so that Sanitize(Sanitize(x)) == Sanitize(x) even for inputs
// crafted to reassemble after one pass.
func Sanitize(s string) string {
	out := stripAll(tagRe, s)
	out = stripAll(jsSchemeRe, out)
	out = stripAll(eventAttrRe, out)
	return strings.TrimSpace(out)
}

func stripAll(re *regexp.Regexp, s string) string {
	for {
		next := re.ReplaceAllString(s, "")
		if next == s {
			return s
		}
		s = next
	}
}

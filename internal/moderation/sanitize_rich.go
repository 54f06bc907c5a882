package moderation

import (
	"regexp"
	"strings"
)

// Fields rendered as rich text keep a small safelist of inline formatting
// tags. Everything else is stripped, and anchors are rebuilt so only href,
// target and rel survive.
var allowedInlineTags = map[string]bool{
	"b":      true,
	"i":      true,
	"em":     true,
	"strong": true,
	"u":      true,
	"code":   true,
	"br":     true,
}

var (
	tagNameRe = regexp.MustCompile(`^</?\s*([a-zA-Z0-9]+)`)
	hrefRe    = regexp.MustCompile(`(?i)\bhref\s*=\s*"([^"]*)"`)
	targetRe  = regexp.MustCompile(`(?i)\btarget\s*=\s*"([^"]*)"`)
	relRe     = regexp.MustCompile(`(?i)\brel\s*=\s*"([^"]*)"`)
)

// SanitizeRich strips markup down to the inline-formatting safelist. The
// javascript: scheme and inline handler patterns are removed first, so a
// surviving anchor can never carry either.
func SanitizeRich(s string) string {
	out := stripAll(jsSchemeRe, s)
	out = stripAll(eventAttrRe, out)

	out = tagRe.ReplaceAllStringFunc(out, func(tag string) string {
		m := tagNameRe.FindStringSubmatch(tag)
		if m == nil {
			return ""
		}
		name := strings.ToLower(m[1])
		closing := strings.HasPrefix(tag, "</")

		if allowedInlineTags[name] {
			if closing {
				return "</" + name + ">"
			}
			return "<" + name + ">"
		}

		if name == "a" {
			if closing {
				return "</a>"
			}
			return rebuildAnchor(tag)
		}

		return ""
	})

	return strings.TrimSpace(out)
}

func rebuildAnchor(tag string) string {
	var b strings.Builder
	b.WriteString("<a")
	for _, attr := range []struct {
		name string
		re   *regexp.Regexp
	}{
		{"href", hrefRe},
		{"target", targetRe},
		{"rel", relRe},
	} {
		if m := attr.re.FindStringSubmatch(tag); m != nil {
			value := strings.ReplaceAll(m[1], `"`, "")
			b.WriteString(` ` + attr.name + `="` + value + `"`)
		}
	}
	b.WriteString(">")
	return b.String()
}

package moderation

import (
	"errors"
	"strings"
	"testing"
)

func newTestGate() *Gate {
	return New(fallbackWords)
}

func TestValidate(t *testing.T) {
	gate := newTestGate()

	tests := []struct {
		name    string
		content string
		maxLen  int
		wantErr error
	}{
		{
			name:    "clean content passes",
			content: "Hello world, this is a perfectly normal tweet.",
			maxLen:  DefaultTweetMaxLen,
		},
		{
			name:    "empty content",
			content: "",
			maxLen:  DefaultTweetMaxLen,
			wantErr: ErrEmptyContent,
		},
		{
			name:    "whitespace only",
			content: "   \n\t  ",
			maxLen:  DefaultTweetMaxLen,
			wantErr: ErrEmptyContent,
		},
		{
			name:    "markup only becomes empty",
			content: "<div><span></span></div>",
			maxLen:  DefaultTweetMaxLen,
			wantErr: ErrEmptyContent,
		},
		{
			name:    "over the limit",
			content: strings.Repeat("a b ", 71), // 284 chars
			maxLen:  DefaultTweetMaxLen,
			wantErr: ErrTooLong,
		},
		{
			name:    "spam phrase",
			content: "buy now!!! incredible deal",
			maxLen:  DefaultTweetMaxLen,
			wantErr: ErrSpamHeuristic,
		},
		{
			name:    "repeated characters",
			content: "soooooo cool",
			maxLen:  DefaultTweetMaxLen,
			wantErr: ErrSpamHeuristic,
		},
		{
			name:    "shouting with three or more words",
			content: "HELLO WORLD EVERYONE",
			maxLen:  DefaultTweetMaxLen,
			wantErr: ErrSpamHeuristic,
		},
		{
			name:    "two shouted words are tolerated",
			content: "GO TEAM",
			maxLen:  DefaultTweetMaxLen,
		},
		{
			name:    "too many links",
			content: "http://a.io http://b.io https://c.io https://d.io",
			maxLen:  DefaultTweetMaxLen,
			wantErr: ErrSpamHeuristic,
		},
		{
			name:    "three links are fine",
			content: "see http://a.io http://b.io and https://c.io",
			maxLen:  DefaultTweetMaxLen,
			wantErr: nil,
		},
		{
			name:    "prohibited word case-insensitive",
			content: "This is SPAM content",
			maxLen:  DefaultTweetMaxLen,
			wantErr: ErrProhibitedWord,
		},
		{
			name:    "prohibited word as substring does not match",
			content: "spammer's delight",
			maxLen:  DefaultTweetMaxLen,
		},
		{
			name:    "prohibited word surrounded by punctuation",
			content: "total (spam), honestly",
			maxLen:  DefaultTweetMaxLen,
			wantErr: ErrProhibitedWord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := gate.Validate(tt.content, tt.maxLen)
			if tt.wantErr == nil {
				if !res.Valid {
					t.Fatalf("Validate(%q) = invalid (%v), want valid", tt.content, res.Err)
				}
				return
			}
			if res.Valid {
				t.Fatalf("Validate(%q) = valid, want error %v", tt.content, tt.wantErr)
			}
			if !errors.Is(res.Err, tt.wantErr) {
				t.Fatalf("Validate(%q) error = %v, want %v", tt.content, res.Err, tt.wantErr)
			}
		})
	}
}

func TestValidateLengthBoundary(t *testing.T) {
	gate := newTestGate()

	// a single repeated rune would trip the repeated-run guard, so alternate
	alternating := strings.Repeat("ab", DefaultTweetMaxLen/2)
	if res := gate.Validate(alternating, DefaultTweetMaxLen); !res.Valid {
		t.Fatalf("content exactly at the limit should pass: %v", res.Err)
	}
	if res := gate.Validate(alternating+"c", DefaultTweetMaxLen); res.Valid || !errors.Is(res.Err, ErrTooLong) {
		t.Fatalf("content one over the limit should fail with ErrTooLong, got valid=%v err=%v", res.Valid, res.Err)
	}
}

func TestValidatePostChecksIdentity(t *testing.T) {
	gate := newTestGate()

	res := gate.ValidatePost("a perfectly fine message", "spam", "@spam", DefaultTweetMaxLen)
	if res.Valid || !errors.Is(res.Err, ErrProhibitedWord) {
		t.Fatalf("offensive author name should be rejected, got valid=%v err=%v", res.Valid, res.Err)
	}

	res = gate.ValidatePost("a perfectly fine message", "Clean User", "@clean", DefaultTweetMaxLen)
	if !res.Valid {
		t.Fatalf("clean post should pass: %v", res.Err)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"tags stripped", "<b>hello</b> <script>x()</script>world", "hello x()world"},
		{"attributes go with their tag", `<div onclick="x()">hi</div>`, "hi"},
		{"javascript scheme removed", "javascript:alert(1)", "alert(1)"},
		{"event handler removed", "onclick=doEvil() hello", "doEvil() hello"},
		{"trimmed", "  hi  ", "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"hello world",
		"<b>hello</b>",
		"<<b>script>nested<</b>/script>",
		"javajavascript:script:alert(1)",
		"onclonclick=ick=x",
		"  <div> spaced </div>  ",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Fatalf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSanitizeRich(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"allowed inline tags kept", "<b>bold</b> and <em>em</em>", "<b>bold</b> and <em>em</em>"},
		{"disallowed tags stripped", "<script>x</script><b>ok</b>", "x<b>ok</b>"},
		{
			"anchor keeps safelisted attributes",
			`<a href="https://example.com" target="_blank" style="color:red">link</a>`,
			`<a href="https://example.com" target="_blank">link</a>`,
		},
		{
			"javascript href neutralized",
			`<a href="javascript:alert(1)">x</a>`,
			`<a href="alert(1)">x</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeRich(tt.in); got != tt.want {
				t.Fatalf("SanitizeRich(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadWordListFallsBack(t *testing.T) {
	words := LoadWordList("/nonexistent/words.txt")
	if len(words) == 0 {
		t.Fatal("expected fallback word list, got none")
	}
	found := false
	for _, w := range words {
		if w == "spam" {
			found = true
		}
	}
	if !found {
		t.Fatal("fallback list should contain \"spam\"")
	}
}

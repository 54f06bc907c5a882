package moderation

import (
	"bufio"
	"os"
	"strings"
)

// fallbackWords is used when no external word list is configured or the file
// cannot be read. The real deployment ships a much longer list alongside the
// binary.
var fallbackWords = []string{
	"spam",
	"scam",
	"viagra",
	"casino",
	"porn",
	"xxx",
	"fuck",
	"shit",
	"bitch",
	"asshole",
	"bastard",
	"nazi",
}

var spamPhrases = []string{
	"buy now",
	"click here",
	"make money",
	"guaranteed",
	"free money",
	"limited time offer",
	"act now",
	"work from home",
	"earn cash",
	"100% free",
}

// LoadWordList reads one term per line, skipping blanks and '#' comments.
// On any error the hardcoded fallback is returned so the gate never runs
// with an empty list.
func LoadWordList(path string) []string {
	if path == "" {
		return fallbackWords
	}

	f, err := os.Open(path)
	if err != nil {
		return fallbackWords
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if scanner.Err() != nil || len(words) == 0 {
		return fallbackWords
	}

	return words
}

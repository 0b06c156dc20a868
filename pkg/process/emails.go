package process

import (
	"regexp"
	"strings"
)

// EmailExtractor finds syntactically valid email addresses in text,
// unique within the call and in order of first appearance.
type EmailExtractor interface {
	Extract(text string) []string
}

// Candidate scan; structural rules (dot placement, length bounds) are
// checked separately because they are awkward to express in one pattern.
var emailCandidateRe = regexp.MustCompile(`[A-Za-z0-9._+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

var tldRe = regexp.MustCompile(`^[A-Za-z]{2,}$`)

// RegexExtractor extracts addresses with a candidate regex pass followed
// by structural validation of each match.
type RegexExtractor struct{}

// NewRegexExtractor creates a RegexExtractor
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

// Extract returns the valid addresses found in text, deduplicated within
// the call (first appearance wins, exact string match) and in scan order.
func (e *RegexExtractor) Extract(text string) []string {
	candidates := emailCandidateRe.FindAllString(text, -1)
	if len(candidates) == 0 {
		return nil
	}

	var emails []string
	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		if !ValidEmail(candidate) {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		emails = append(emails, candidate)
	}
	return emails
}

// ValidEmail reports whether s satisfies the address grammar:
// local part of 1-64 characters from [A-Za-z0-9._+-] with no
// leading/trailing/consecutive dots; domain of 1-255 characters from
// [A-Za-z0-9.-] with no leading/trailing dot or hyphen, no consecutive
// dots, at least one dot, and a top-level label of at least two letters.
func ValidEmail(s string) bool {
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]

	// Local part
	if len(local) > 64 {
		return false
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	for _, r := range local {
		if !isLocalChar(r) {
			return false
		}
	}

	// Domain
	if len(domain) > 255 {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") ||
		strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return false
	}
	if strings.Contains(domain, "..") {
		return false
	}
	if !strings.Contains(domain, ".") {
		return false
	}
	for _, r := range domain {
		if !isDomainChar(r) {
			return false
		}
	}

	// Top-level label must be alphabetic, length >= 2
	tld := domain[strings.LastIndex(domain, ".")+1:]
	return tldRe.MatchString(tld)
}

func isLocalChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.' || r == '_' || r == '+' || r == '-':
		return true
	}
	return false
}

func isDomainChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.' || r == '-':
		return true
	}
	return false
}

package analysis

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
)

// MaxIdeaLength bounds the idea text accepted at the input boundary, in characters.
const MaxIdeaLength = 2000

const maxDerivedTitle = 60

// ValidateIdea trims idea and enforces the input boundary.
func ValidateIdea(idea string) (string, error) {
	trimmed := strings.TrimSpace(idea)
	if trimmed == "" {
		return "", domain.Errorf(domain.KindInvalidInput, "Idea is required", nil)
	}
	if n := utf8.RuneCountInString(trimmed); n > MaxIdeaLength {
		return "", domain.Errorf(domain.KindInvalidInput,
			fmt.Sprintf("Idea is too long (%d characters, maximum %d).", n, MaxIdeaLength), nil)
	}
	return trimmed, nil
}

// DeriveTitle builds a short label from the idea, cut on a word boundary.
func DeriveTitle(idea string) string {
	s := strings.Join(strings.Fields(idea), " ")
	if s == "" {
		return "Untitled Project"
	}
	if utf8.RuneCountInString(s) <= maxDerivedTitle {
		return s
	}
	runes := []rune(s)[:maxDerivedTitle]
	cut := string(runes)
	if i := strings.LastIndex(cut, " "); i > maxDerivedTitle/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:-") + "…"
}

package docxtpl

import (
	"regexp"
	"strings"
)

// TokenType represents the type of a template token
type TokenType int

const (
	TokenText TokenType = iota
	TokenPlaceholder
	TokenBlockStart
	TokenBlockEnd
)

// Token represents a parsed template token
type Token struct {
	Type  TokenType
	Value string
}

// tokenRegex matches delimiter-wrapped template tokens
var tokenRegex = regexp.MustCompile(`\{\{([^}]*)\}\}`)

// Tokenize splits template text into literal text, placeholder tokens, and
// conditional block markers.
func Tokenize(input string) []Token {
	var tokens []Token
	lastEnd := 0

	matches := tokenRegex.FindAllStringSubmatchIndex(input, -1)

	for _, match := range matches {
		if match[0] > lastEnd {
			tokens = append(tokens, Token{
				Type:  TokenText,
				Value: input[lastEnd:match[0]],
			})
		}

		content := strings.TrimSpace(input[match[2]:match[3]])
		if content == "" {
			// Keep empty {{}} as literal text
			tokens = append(tokens, Token{
				Type:  TokenText,
				Value: input[match[0]:match[1]],
			})
		} else {
			tokens = append(tokens, parseToken(content))
		}

		lastEnd = match[1]
	}

	if lastEnd < len(input) {
		tokens = append(tokens, Token{
			Type:  TokenText,
			Value: input[lastEnd:],
		})
	}

	return tokens
}

// parseToken determines the type of token from its content
func parseToken(content string) Token {
	switch {
	case strings.HasPrefix(content, "#block"):
		return Token{
			Type:  TokenBlockStart,
			Value: strings.TrimSpace(strings.TrimPrefix(content, "#block")),
		}
	case strings.HasPrefix(content, "/block"):
		return Token{
			Type:  TokenBlockEnd,
			Value: strings.TrimSpace(strings.TrimPrefix(content, "/block")),
		}
	default:
		return Token{
			Type:  TokenPlaceholder,
			Value: content,
		}
	}
}

// HasTokens reports whether the text contains any template tokens
func HasTokens(input string) bool {
	return tokenRegex.MatchString(input)
}

// FindTemplateTokens finds all template tokens in a string.
// This is a utility function for debugging and template inspection.
func FindTemplateTokens(input string) []string {
	matches := tokenRegex.FindAllString(input, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

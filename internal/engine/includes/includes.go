// Package includes extracts the active local includes of a sketch source.
package includes

import (
	"regexp"
	"strings"

	"go.trai.ch/sketchsense/internal/core/domain"
)

var localInclude = regexp.MustCompile(`^\s*#\s*include\s*"([^"]+)"`)

// Active returns the header names of every uncommented `#include "…"`
// directive in source, in order of appearance.
func Active(source string) []string {
	var names []string
	for line := range strings.SplitSeq(stripComments(source), "\n") {
		if m := localInclude.FindStringSubmatch(line); m != nil {
			names = append(names, m[1])
		}
	}
	return names
}

// Fingerprint returns the change-detection key of source.
func Fingerprint(source string) domain.Fingerprint {
	return domain.NewFingerprint(Active(source))
}

// Unique returns names without repeats, keeping first occurrences.
func Unique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// stripComments blanks out line and block comments, keeping newlines so line
// structure survives. String and character literals are copied verbatim.
func stripComments(src string) string {
	const (
		code = iota
		lineComment
		blockComment
		stringLit
		charLit
	)

	var b strings.Builder
	b.Grow(len(src))
	state := code

	for i := 0; i < len(src); i++ {
		c := src[i]
		var next byte
		if i+1 < len(src) {
			next = src[i+1]
		}

		switch state {
		case code:
			switch {
			case c == '/' && next == '/':
				state = lineComment
				i++
				b.WriteString("  ")
			case c == '/' && next == '*':
				state = blockComment
				i++
				b.WriteString("  ")
			case c == '"':
				state = stringLit
				b.WriteByte(c)
			case c == '\'':
				state = charLit
				b.WriteByte(c)
			default:
				b.WriteByte(c)
			}
		case lineComment:
			if c == '\n' {
				state = code
				b.WriteByte(c)
			}
		case blockComment:
			switch {
			case c == '*' && next == '/':
				state = code
				i++
				b.WriteString("  ")
			case c == '\n':
				b.WriteByte(c)
			}
		case stringLit, charLit:
			b.WriteByte(c)
			quote := byte('"')
			if state == charLit {
				quote = '\''
			}
			switch {
			case c == '\\' && next != '\n' && next != 0:
				b.WriteByte(next)
				i++
			case c == quote, c == '\n':
				state = code
			}
		}
	}
	return b.String()
}

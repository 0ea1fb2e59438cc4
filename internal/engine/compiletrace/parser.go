// Package compiletrace extracts the authoritative compile invocation from a
// verbose build trace.
package compiletrace

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/sketchsense/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	flagInclude           = "-I"
	flagDefine            = "-D"
	flagPrefix            = "-iprefix"
	flagWithPrefixBefore  = "-iwithprefixbefore"
	flagWithPrefix        = "-iwithprefix"
	flagMCU               = "-mmcu="
	includeListMarker     = "@"
	includeListSuffix     = ".txt"
	includeListESP32Label = "includes"
)

// IncludeListReader reads an include-list file referenced by an @file token.
type IncludeListReader func(path string) ([]byte, error)

// Parser decomposes compile lines of a verbose build trace.
type Parser struct {
	read   IncludeListReader
	logger ports.Logger
}

// NewParser creates a Parser that reads include lists from disk.
func NewParser(logger ports.Logger) *Parser {
	return NewParserWithReader(logger, os.ReadFile)
}

// NewParserWithReader creates a Parser with a custom include-list reader.
func NewParserWithReader(logger ports.Logger, read IncludeListReader) *Parser {
	return &Parser{read: read, logger: logger}
}

// Parse returns the invocation of the last compile line of trace.
// A trace without a qualifying line yields domain.ErrNoCompilerCommand.
func (p *Parser) Parse(trace string) (*domain.Invocation, error) {
	line, marker, ok := lastCompileLine(trace)
	if !ok {
		return nil, domain.ErrNoCompilerCommand
	}

	inv := &domain.Invocation{}
	var lists []string

	tokens := Tokenize(line)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if inv.CompilerPath == "" && strings.Contains(tok, marker) {
			inv.CompilerPath = tok
			continue
		}

		switch {
		case strings.HasPrefix(tok, flagPrefix):
			v, next := flagValue(tokens, i, flagPrefix)
			inv.PrefixBase, i = v, next
		case strings.HasPrefix(tok, flagInclude):
			v, next := flagValue(tokens, i, flagInclude)
			if v != "" {
				inv.IncludePaths = append(inv.IncludePaths, v)
			}
			i = next
		case strings.HasPrefix(tok, flagDefine):
			v, next := flagValue(tokens, i, flagDefine)
			if v != "" {
				inv.Defines = append(inv.Defines, v)
			}
			i = next
		case strings.HasPrefix(tok, flagMCU):
			inv.MCU = strings.TrimPrefix(tok, flagMCU)
		case isIncludeList(tok):
			lists = append(lists, strings.TrimPrefix(tok, includeListMarker))
		}
	}

	for _, list := range lists {
		inv.IncludePaths = append(inv.IncludePaths, p.readIncludeList(list, inv.PrefixBase)...)
	}

	return inv, nil
}

// readIncludeList collects the include directories named by an include-list
// file. Unreadable files contribute nothing.
func (p *Parser) readIncludeList(path, prefix string) []string {
	data, err := p.read(path)
	if err != nil {
		p.logger.WarnErr(zerr.With(domain.Wrap(err, domain.ErrIncludeListReadFailed), "path", path))
		return nil
	}

	var dirs []string
	for line := range strings.SplitSeq(string(data), "\n") {
		tokens := Tokenize(line)
		for i := 0; i < len(tokens); i++ {
			tok := tokens[i]
			switch {
			case strings.HasPrefix(tok, flagWithPrefixBefore):
				v, next := flagValue(tokens, i, flagWithPrefixBefore)
				i = next
				if v != "" {
					dirs = append(dirs, joinPrefix(prefix, v))
				}
			case strings.HasPrefix(tok, flagWithPrefix):
				v, next := flagValue(tokens, i, flagWithPrefix)
				i = next
				if v != "" {
					dirs = append(dirs, joinPrefix(prefix, v))
				}
			case strings.HasPrefix(tok, flagInclude):
				v, next := flagValue(tokens, i, flagInclude)
				i = next
				if v != "" {
					dirs = append(dirs, joinPrefix(prefix, v))
				}
			}
		}
	}
	return dirs
}

// lastCompileLine finds the last line naming a known compiler together with
// at least one include flag. Link lines carry no -I and are skipped.
func lastCompileLine(trace string) (line, marker string, ok bool) {
	markers := domain.CompilerMarkers()
	for l := range strings.SplitSeq(trace, "\n") {
		m := matchMarker(l, markers)
		if m == "" || !hasIncludeFlag(l) {
			continue
		}
		line, marker, ok = l, m, true
	}
	return line, marker, ok
}

func matchMarker(line string, markers []string) string {
	for _, m := range markers {
		if strings.Contains(line, m) {
			return m
		}
	}
	return ""
}

func hasIncludeFlag(line string) bool {
	for _, tok := range Tokenize(line) {
		if strings.HasPrefix(tok, flagInclude) {
			return true
		}
	}
	return false
}

func isIncludeList(tok string) bool {
	if !strings.HasPrefix(tok, includeListMarker) {
		return false
	}
	path := strings.TrimPrefix(tok, includeListMarker)
	return strings.HasSuffix(path, includeListSuffix) || filepath.Base(path) == includeListESP32Label
}

// flagValue returns the value of a joined (-Ifoo) or separate (-I foo) flag
// and the index of the last token consumed.
func flagValue(tokens []string, i int, flag string) (string, int) {
	if v := strings.TrimPrefix(tokens[i], flag); v != "" {
		return v, i
	}
	if i+1 < len(tokens) {
		return tokens[i+1], i + 1
	}
	return "", i
}

func joinPrefix(prefix, dir string) string {
	if prefix == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(prefix, dir)
}

// Tokenize splits a command line on whitespace, strips one layer of
// surrounding double quotes per token and unescapes \".
func Tokenize(line string) []string {
	fields := strings.Fields(line)
	for i, f := range fields {
		if len(f) >= 2 && f[0] == '"' && f[len(f)-1] == '"' {
			f = f[1 : len(f)-1]
		}
		fields[i] = strings.ReplaceAll(f, `\"`, `"`)
	}
	return fields
}

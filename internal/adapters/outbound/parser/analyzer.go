package parser

import (
	"github.com/charmbracelet/log"

	"github.com/codeatlas/codeatlas/internal/domain"
)

// Analyzer implements domain.CodeAnalyzer. Go files go through the AST
// parser; everything else, and Go that does not parse, through the line
// scanner.
type Analyzer struct {
	goParser *GoParser
	scanner  *LineScanner
	logger   *log.Logger
}

func New(logger *log.Logger) *Analyzer {
	if logger == nil {
		logger = log.Default()
	}
	return &Analyzer{
		goParser: NewGoParser(),
		scanner:  NewLineScanner(),
		logger:   logger,
	}
}

func (a *Analyzer) Analyze(lang domain.Language, file domain.SourceFile) domain.RawFacts {
	if lang == domain.LanguageGo {
		facts, err := a.goParser.Parse(file)
		if err == nil {
			return facts
		}
		a.logger.Debug("falling back to line scanner", "file", file.Path, "err", err)
	}
	return a.scanner.Scan(lang, file)
}

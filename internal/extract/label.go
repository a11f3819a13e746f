package extract

import (
	"go.uber.org/zap"

	"github.com/zenpack-tools/zplc/internal/source/ast"
	"github.com/zenpack-tools/zplc/internal/source/lexer"
	"github.com/zenpack-tools/zplc/internal/source/parser"
)

// registerNameFunc is the namespace method registering class labels:
// ZC.registerName('Foo', _t('Foo'), _t('Foos'))
const registerNameFunc = "registerName"

// Labels reads class label registrations from a UI script
func (e *Extractor) Labels(file, source string) {
	tokens, _ := lexer.Tokenize(source, lexer.DialectScript)

	for i := 1; i+1 < len(tokens); i++ {
		tok := tokens[i]
		if tok.Type != lexer.TOKEN_IDENTIFIER || tok.Lexeme != registerNameFunc {
			continue
		}
		if tokens[i-1].Type != lexer.TOKEN_DOT || tokens[i+1].Type != lexer.TOKEN_LPAREN {
			continue
		}

		p := parser.New(tokens, lexer.DialectScript)
		p.Seek(i + 1)
		args, errs := p.ParseCallArguments()
		if len(errs) > 0 {
			e.diagnose(file, tok.Line, registerNameFunc, "could not parse arguments: %s", errs[0].Message)
			continue
		}

		e.label(file, tok.Line, args)
		i = p.Position() - 1
	}
}

func (e *Extractor) label(file string, line int, args []ast.ExprNode) {
	if len(args) != 3 {
		e.diagnose(file, line, registerNameFunc, "expected 3 arguments, got %d", len(args))
		return
	}

	texts := make([]string, 0, len(args))
	for n, arg := range args {
		text, ok := ast.Text(arg)
		if !ok {
			e.diagnose(file, line, registerNameFunc, "argument %d is not text", n+1)
			return
		}
		texts = append(texts, text)
	}

	if texts[0] == "" {
		e.diagnose(file, line, registerNameFunc, "empty class id")
		return
	}

	class := e.builder.Class(texts[0])
	class.Label = texts[1]
	class.PluralLabel = texts[2]
	e.logger.Debug("class label", zap.String("class", class.ID), zap.String("label", class.Label))
}

package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer splits move text into words and the dots separating sub-commands.
// Words cover faction names, building codes, hex names ("-2x3"), reward
// lists ("4pw,1q") and comma separated hex lists.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Dot", Pattern: `\.`},
	{Name: "Word", Pattern: `[^\s.]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Build creates our parser based on the struct tags in `ast.go`
func Build() *participle.Parser[Move] {
	return participle.MustBuild[Move](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
	)
}

var moveParser = Build()

// Parse reads one move. Errors are *ParseError.
func Parse(text string) (*Move, error) {
	m, err := moveParser.ParseString("", text)
	if err != nil {
		return nil, MapError(text, err)
	}
	return m, nil
}

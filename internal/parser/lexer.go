package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes console input. Input is lowercased before lexing.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `\b(?:attack|block|charge|use|recall|to|pick|end|pass|status|recipes|help|quit|exit)\b`},
	{Name: "Ident", Pattern: `[a-z_][a-z0-9_-]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:,]`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

// Build creates the parser from the struct tags in ast.go.
func Build() *participle.Parser[Command] {
	return participle.MustBuild[Command](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
	)
}

var shared = Build()

// Parse reads one console line.
func Parse(line string) (*Command, error) {
	input := strings.ToLower(strings.TrimSpace(line))
	cmd, err := shared.ParseString("", input)
	if err != nil {
		return nil, MapError(input, err)
	}
	return cmd, nil
}

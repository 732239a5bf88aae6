package parser

import (
	"lambda/internal/frontend/ast"
	"lambda/internal/frontend/lexer"
)

// ============================================================================
// PARSER - Token to AST Conversion
// ============================================================================
//
// Grammar:
//
//	Node               := Expression Newline*
//	Expression         := Element*
//	Element            := FunctionDefinition | ExpressionGroup | Identifier
//	FunctionDefinition := '\' Identifier '.' Element
//	ExpressionGroup    := '(' Expression ')'
//
// Elements of an Expression fold left: "a b c" is ((a b) c). A lambda body
// is a single Element, so "\x.a b" is ((\x.a) b); parentheses restore
// full-expression scope.

// Parser holds the token cursor for one token stream. It is not safe for
// concurrent use.
type Parser struct {
	input *cursor
}

// New creates a parser over tokens. Comment tokens carry no syntax and are
// dropped up front.
func New(tokens []lexer.Token) *Parser {
	filtered := make([]lexer.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != lexer.COMMENT_TOKEN {
			filtered = append(filtered, tok)
		}
	}
	return &Parser{input: newCursor(filtered)}
}

// Parse parses every node in tokens. It stops at the first malformed node
// and returns the nodes parsed before it together with a *ParserError.
func Parse(tokens []lexer.Token) ([]ast.Expression, error) {
	return New(tokens).ParseAll()
}

// ParseAll parses nodes until the token stream is exhausted. Blank lines
// produce no node.
func (p *Parser) ParseAll() ([]ast.Expression, error) {
	nodes := make([]ast.Expression, 0)
	for p.hasMore() {
		node, err := p.Parse()
		if err != nil {
			return nodes, err
		}
		if !ast.IsEmpty(node) {
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

// Parse parses exactly one node: an expression, then the run of newlines
// that terminates it. An EOF directly after the node is consumed too, which
// is what lets ParseAll finish.
func (p *Parser) Parse() (ast.Expression, error) {
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	tok, ok := p.input.Current()
	if ok && tok.Is(lexer.CLOSE_PAREN) {
		// parseExpression only stops at ')' inside a group
		return nil, NewParserError(lexer.Newline(), &tok)
	}

	for ok && tok.Kind == lexer.NEWLINE_TOKEN {
		p.input.Next()
		tok, ok = p.input.Current()
	}

	if ok && tok.Kind == lexer.EOF_TOKEN {
		p.input.Next()
	}

	return node, nil
}

// parseExpression folds Elements into a left-associative application
// chain until ')', a newline or EOF. No elements yields ast.Empty.
func (p *Parser) parseExpression() (ast.Expression, error) {
	var result ast.Expression = &ast.Empty{}

	for {
		tok, ok := p.input.Current()
		if !ok || tok.Is(lexer.CLOSE_PAREN) || tok.Kind == lexer.NEWLINE_TOKEN || tok.Kind == lexer.EOF_TOKEN {
			break
		}

		element, err := p.parseElement()
		if err != nil {
			return nil, err
		}

		if ast.IsEmpty(result) {
			result = element
		} else {
			result = &ast.FunctionApplication{Function: result, Argument: element}
		}
	}

	return result, nil
}

// parseElement dispatches on the next token without consuming it
func (p *Parser) parseElement() (ast.Expression, error) {
	tok, ok := p.input.Current()
	switch {
	case !ok:
		return nil, NewParserError(lexer.Identifier(""), nil)
	case tok.Is(lexer.LAMBDA):
		return p.parseFunctionDefinition()
	case tok.Is(lexer.OPEN_PAREN):
		return p.parseExpressionGroup()
	case tok.Kind == lexer.IDENTIFIER_TOKEN:
		return p.parseIdentifier()
	default:
		return nil, NewParserError(lexer.Identifier(""), &tok)
	}
}

// parseIdentifier consumes exactly one identifier token
func (p *Parser) parseIdentifier() (*ast.Identifier, error) {
	tok, ok := p.input.Next()
	if !ok {
		return nil, NewParserError(lexer.Identifier(""), nil)
	}
	if tok.Kind != lexer.IDENTIFIER_TOKEN {
		return nil, NewParserError(lexer.Identifier(""), &tok)
	}
	return &ast.Identifier{Name: tok.Value}, nil
}

// parseFunctionDefinition: '\' Identifier '.' Element
//
// All four parts are attempted even after one fails; the reported error is
// the first failing part from the left.
func (p *Parser) parseFunctionDefinition() (ast.Expression, error) {
	_, lambdaErr := p.expect(lexer.Punctuation(lexer.LAMBDA))
	param, paramErr := p.parseIdentifier()
	_, dotErr := p.expect(lexer.Punctuation(lexer.DOT))
	body, bodyErr := p.parseElement()

	if err := firstError(lambdaErr, paramErr, dotErr, bodyErr); err != nil {
		return nil, err
	}

	return &ast.FunctionDefinition{
		Parameter: param,
		Body:      body,
	}, nil
}

// parseExpressionGroup: '(' Expression ')'
//
// Like parseFunctionDefinition, every part is attempted before the first
// failure is reported. An empty inner expression parses fine, so an
// unclosed "(" reports the missing ')'; only a well-formed "()" is
// rejected, against the token that closed it.
func (p *Parser) parseExpressionGroup() (ast.Expression, error) {
	_, lparenErr := p.expect(lexer.Punctuation(lexer.OPEN_PAREN))

	inner, innerErr := p.parseExpression()
	var emptyErr error
	if innerErr == nil && ast.IsEmpty(inner) {
		emptyErr = p.unexpected(lexer.Identifier(""))
	}

	_, rparenErr := p.expect(lexer.Punctuation(lexer.CLOSE_PAREN))

	if err := firstError(lparenErr, innerErr, rparenErr, emptyErr); err != nil {
		return nil, err
	}

	return &ast.ExpressionGroup{Inner: inner}, nil
}

// Helper methods

func (p *Parser) hasMore() bool {
	_, ok := p.input.Current()
	return ok
}

// expect consumes one token and checks that it equals want
func (p *Parser) expect(want lexer.Token) (lexer.Token, error) {
	tok, ok := p.input.Next()
	if !ok {
		return lexer.Token{}, NewParserError(want, nil)
	}
	if tok != want {
		return tok, NewParserError(want, &tok)
	}
	return tok, nil
}

// unexpected builds an error against the next unconsumed token
func (p *Parser) unexpected(want lexer.Token) error {
	tok, ok := p.input.Current()
	if !ok {
		return NewParserError(want, nil)
	}
	return NewParserError(want, &tok)
}

package lang

import (
	"context"
	"log/slog"
)

// ParseString parses a complete fact program and returns its AST.
// The first lexical or syntax error aborts parsing; no partial AST is
// returned.
func ParseString(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Input, error) {
	cfg := makeOptions(opts...)

	toks, err := lex(source)
	if err != nil {
		return nil, err
	}

	p := &parser{
		toks:   toks,
		pos:    0,
		source: source,
	}

	input, err := p.parseInput()
	if err != nil {
		return nil, err
	}

	cfg.logger.TraceContext(ctx, "parse complete",
		slog.Int("universal_regions", len(input.UniversalRegions)),
		slog.Int("blocks", len(input.Blocks)),
	)

	return input, nil
}

// parser holds the parser state.
type parser struct {
	toks   []Token
	pos    int
	source string
}

// parseInput parses the top-level production:
//
//	"universal_regions" "{" Comma<Region> "}"
//	VarUsesRegion? VarDropsRegion? Block*
func (p *parser) parseInput() (*Input, error) {
	if _, err := p.expect(KindUniversalRegions); err != nil {
		return nil, err
	}

	universal, err := braceList(p, startsRegion, parseRegion)
	if err != nil {
		return nil, err
	}

	var uses, drops []VarRegion

	if p.accept(KindVarUsesRegion) {
		uses, err = braceList(p, startsPair, parsePair)
		if err != nil {
			return nil, err
		}
	}

	if p.accept(KindVarDropsRegion) {
		drops, err = braceList(p, startsPair, parsePair)
		if err != nil {
			return nil, err
		}
	}

	blocks := make([]*Block, 0)

	for p.cur().Kind == KindKwBlock {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		blocks = append(blocks, block)
	}

	if _, err := p.expect(KindEOF); err != nil {
		return nil, err
	}

	return NewInput(universal, uses, drops, blocks), nil
}

// parseBlock parses: "block" BlockName "{" Statement* Goto? "}".
func (p *parser) parseBlock() (*Block, error) {
	if _, err := p.expect(KindKwBlock); err != nil {
		return nil, err
	}

	name, err := p.expect(KindBlock)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(KindLBrace); err != nil {
		return nil, err
	}

	statements := make([]*Statement, 0)

	for startsStatement(p.cur().Kind) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		statements = append(statements, stmt)
	}

	var successors []BlockName

	if p.accept(KindGoto) {
		successors, err = commaList(p, startsBlockName, parseBlockName)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(KindSemi); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(KindRBrace); err != nil {
		return nil, err
	}

	return &Block{
		Name:       BlockName(name.Text),
		Statements: statements,
		Goto:       successors,
	}, nil
}

// parseStatement parses a comma-separated effect list terminated by
// ";", with an optional "/"-partitioned form placing the first group
// at the statement's start point.
func (p *parser) parseStatement() (*Statement, error) {
	effects, err := commaList(p, startsEffect, parseEffect)
	if err != nil {
		return nil, err
	}

	var stmt *Statement

	if p.accept(KindSlash) {
		mid, err := commaList(p, startsEffect, parseEffect)
		if err != nil {
			return nil, err
		}

		stmt = NewStatementWithStart(effects, mid)
	} else {
		stmt = NewStatement(effects)
	}

	if _, err := p.expect(KindSemi); err != nil {
		return nil, err
	}

	return stmt, nil
}

// parseEffect parses a fact or the use(...) region list.
func parseEffect(p *parser) (Effect, error) {
	tok := p.cur()

	if tok.Kind == KindUse {
		p.next()

		if _, err := p.expect(KindLParen); err != nil {
			return Effect{}, err
		}

		regions, err := commaList(p, startsRegion, parseRegion)
		if err != nil {
			return Effect{}, err
		}

		if _, err := p.expect(KindRParen); err != nil {
			return Effect{}, err
		}

		return NewUseEffect(regions), nil
	}

	fact, err := p.parseFact()
	if err != nil {
		return Effect{}, err
	}

	return NewFactEffect(fact), nil
}

// parseFact parses one fact variant: keyword "(" arguments ")".
// The var_used and var_drop_used keywords construct the same
// UseVariable fact.
func (p *parser) parseFact() (Fact, error) {
	tok := p.cur()
	p.next()

	if _, err := p.expect(KindLParen); err != nil {
		return Fact{}, err
	}

	var fact Fact

	switch tok.Kind {
	case KindOutlives:
		a, err := p.expect(KindRegion)
		if err != nil {
			return Fact{}, err
		}

		if _, err := p.expect(KindColon); err != nil {
			return Fact{}, err
		}

		b, err := p.expect(KindRegion)
		if err != nil {
			return Fact{}, err
		}

		fact = NewOutlives(Region(a.Text), Region(b.Text))

	case KindBorrowRegionAt:
		region, err := p.expect(KindRegion)
		if err != nil {
			return Fact{}, err
		}

		if _, err := p.expect(KindComma); err != nil {
			return Fact{}, err
		}

		loan, err := p.expect(KindLoan)
		if err != nil {
			return Fact{}, err
		}

		fact = NewBorrowRegionAt(Region(region.Text), Loan(loan.Text))

	case KindInvalidates:
		loan, err := p.expect(KindLoan)
		if err != nil {
			return Fact{}, err
		}

		fact = NewInvalidates(Loan(loan.Text))

	case KindKill:
		loan, err := p.expect(KindLoan)
		if err != nil {
			return Fact{}, err
		}

		fact = NewKill(Loan(loan.Text))

	case KindRegionLiveAt:
		region, err := p.expect(KindRegion)
		if err != nil {
			return Fact{}, err
		}

		fact = NewRegionLiveAt(Region(region.Text))

	case KindVarDefined:
		variable, err := p.expect(KindVariable)
		if err != nil {
			return Fact{}, err
		}

		fact = NewDefineVariable(Variable(variable.Text))

	case KindVarUsed, KindVarDropUsed:
		variable, err := p.expect(KindVariable)
		if err != nil {
			return Fact{}, err
		}

		fact = NewUseVariable(Variable(variable.Text))

	default:
		return Fact{}, p.fail(tok, "a fact keyword or \"use\"")
	}

	if _, err := p.expect(KindRParen); err != nil {
		return Fact{}, err
	}

	return fact, nil
}

// parseRegion parses a single region identifier.
func parseRegion(p *parser) (Region, error) {
	tok, err := p.expect(KindRegion)
	if err != nil {
		return "", err
	}

	return Region(tok.Text), nil
}

// parseBlockName parses a single block-name identifier.
func parseBlockName(p *parser) (BlockName, error) {
	tok, err := p.expect(KindBlock)
	if err != nil {
		return "", err
	}

	return BlockName(tok.Text), nil
}

// parsePair parses: "(" Variable "," Region ")".
func parsePair(p *parser) (VarRegion, error) {
	if _, err := p.expect(KindLParen); err != nil {
		return VarRegion{}, err
	}

	variable, err := p.expect(KindVariable)
	if err != nil {
		return VarRegion{}, err
	}

	if _, err := p.expect(KindComma); err != nil {
		return VarRegion{}, err
	}

	region, err := p.expect(KindRegion)
	if err != nil {
		return VarRegion{}, err
	}

	if _, err := p.expect(KindRParen); err != nil {
		return VarRegion{}, err
	}

	return VarRegion{
		Variable: Variable(variable.Text),
		Region:   Region(region.Text),
	}, nil
}

// braceList parses: "{" Comma<T> "}".
func braceList[T any](
	p *parser,
	first func(Kind) bool,
	elem func(*parser) (T, error),
) ([]T, error) {
	if _, err := p.expect(KindLBrace); err != nil {
		return nil, err
	}

	list, err := commaList(p, first, elem)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(KindRBrace); err != nil {
		return nil, err
	}

	return list, nil
}

// commaList parses zero or more elements separated by commas, with an
// optional trailing comma. It covers every list form in the grammar:
// region lists, (variable, region) pair lists, goto block lists, and
// effect lists. Element order is preserved.
func commaList[T any](
	p *parser,
	first func(Kind) bool,
	elem func(*parser) (T, error),
) ([]T, error) {
	list := make([]T, 0)

	for first(p.cur().Kind) {
		v, err := elem(p)
		if err != nil {
			return nil, err
		}

		list = append(list, v)

		if !p.accept(KindComma) {
			break
		}
	}

	return list, nil
}

// First-token predicates for commaList.

func startsRegion(k Kind) bool { return k == KindRegion }

func startsBlockName(k Kind) bool { return k == KindBlock }

func startsPair(k Kind) bool { return k == KindLParen }

// startsStatement also admits the degenerate empty forms ";" and
// "/ ... ;", which the grammar's empty effect lists allow.
func startsStatement(k Kind) bool {
	return startsEffect(k) || k == KindSemi || k == KindSlash
}

func startsEffect(k Kind) bool {
	switch k {
	case KindOutlives, KindBorrowRegionAt, KindInvalidates, KindKill,
		KindRegionLiveAt, KindVarUsed, KindVarDefined, KindVarDropUsed,
		KindUse:
		return true
	default:
		return false
	}
}

// Helper methods

func (p *parser) cur() Token {
	return p.toks[p.pos]
}

func (p *parser) next() {
	if p.toks[p.pos].Kind != KindEOF {
		p.pos++
	}
}

func (p *parser) accept(k Kind) bool {
	if p.cur().Kind == k {
		p.next()

		return true
	}

	return false
}

func (p *parser) expect(k Kind) (Token, error) {
	tok := p.cur()
	if tok.Kind != k {
		return Token{}, p.fail(tok, k.String())
	}

	p.next()

	return tok, nil
}

// fail constructs a syntax error at the given token.
func (p *parser) fail(tok Token, expected string) error {
	return newParseError(ErrSyntax, tok.Pos, p.source, tok.Text, expected)
}

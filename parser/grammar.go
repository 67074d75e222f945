// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package parser

import "github.com/mdhender/yarapeg/token"

// Terminal sets used by more than one production, predefined once per
// spec.md's description of TokenSet as "an immutable compile-time set".

var (
	setImportKw    = token.NewSet(token.IMPORT_KW)
	setIncludeKw   = token.NewSet(token.INCLUDE_KW)
	setStringLit   = token.NewSet(token.STRING_LIT)
	setIdent       = token.NewSet(token.IDENT)
	setRuleKw      = token.NewSet(token.RULE_KW)
	setPrivateKw   = token.NewSet(token.PRIVATE_KW)
	setGlobalKw    = token.NewSet(token.GLOBAL_KW)
	setColon       = token.NewSet(token.COLON)
	setLBrace      = token.NewSet(token.L_BRACE)
	setRBrace      = token.NewSet(token.R_BRACE)
	setLParen      = token.NewSet(token.L_PAREN)
	setRParen      = token.NewSet(token.R_PAREN)
	setLBracket    = token.NewSet(token.L_BRACKET)
	setRBracket    = token.NewSet(token.R_BRACKET)
	setEqual       = token.NewSet(token.EQUAL)
	setComma       = token.NewSet(token.COMMA)
	setMetaKw      = token.NewSet(token.META_KW)
	setStringsKw   = token.NewSet(token.STRINGS_KW)
	setConditionKw = token.NewSet(token.CONDITION_KW)
	setMinus       = token.NewSet(token.MINUS)
	setHyphen      = token.NewSet(token.HYPHEN)
	setIntegerLit  = token.NewSet(token.INTEGER_LIT)
	setFloatLit    = token.NewSet(token.FLOAT_LIT)
	setBase64Kw     = token.NewSet(token.BASE64_KW, token.BASE64WIDE_KW)
	setXorKw        = token.NewSet(token.XOR_KW)
	setPatternIdent = token.NewSet(token.PATTERN_IDENT)
	setRegexp       = token.NewSet(token.REGEXP)
	setHexByte      = token.NewSet(token.HEX_BYTE)
	setPipe         = token.NewSet(token.PIPE)
	setAt           = token.NewSet(token.AT_KW)
	setIn           = token.NewSet(token.IN_KW)
	setAndOr        = token.NewSet(token.AND_KW, token.OR_KW)
	setNotDefined   = token.NewSet(token.NOT_KW, token.DEFINED_KW)
	setCompareOp    = token.NewSet(token.EQ, token.NE, token.LE, token.LT, token.GE, token.GT,
		token.CONTAINS_KW, token.ICONTAINS_KW, token.STARTSWITH_KW, token.ISTARTSWITH_KW,
		token.ENDSWITH_KW, token.IENDSWITH_KW, token.IEQUALS_KW, token.MATCHES_KW)
	setArithBit = token.NewSet(token.ADD, token.SUB, token.MUL, token.DIV, token.MOD,
		token.SHL, token.SHR, token.BITWISE_AND, token.BITWISE_OR, token.BITWISE_XOR, token.DOT)
	setDot         = token.NewSet(token.DOT)
	setLBracketExp = token.NewSet(token.L_BRACKET)
	setFilesizeKw  = token.NewSet(token.FILESIZE_KW)
	setEntryKw     = token.NewSet(token.ENTRYPOINT_KW)
	setPatternCnt  = token.NewSet(token.PATTERN_COUNT)
	setPatternOffLen = token.NewSet(token.PATTERN_OFFSET, token.PATTERN_LENGTH)
	setBitwiseNot  = token.NewSet(token.BITWISE_NOT)
	setPercent     = token.NewSet(token.PERCENT)
	setForKw       = token.NewSet(token.FOR_KW)
	setOfKw        = token.NewSet(token.OF_KW)
	setWithKw      = token.NewSet(token.WITH_KW)
	setThemKw      = token.NewSet(token.THEM_KW)
	setAsterisk    = token.NewSet(token.ASTERISK)
	setAllNoneAny  = token.NewSet(token.ALL_KW, token.NONE_KW, token.ANY_KW)

	// Recovery sets (spec.md §4.6 "notes on grammar design").
	topLevelStartSet = token.NewSet(token.GLOBAL_KW, token.PRIVATE_KW, token.RULE_KW,
		token.IMPORT_KW, token.INCLUDE_KW)
	ruleTagsRecoverySet = setLBrace
	metaBlkRecoverySet  = token.NewSet(token.STRINGS_KW, token.CONDITION_KW)
	patternsBlkRecoverySet = setConditionKw
	conditionBlkRecoverySet = setRBrace
)

// topLevelItemDesc is the exact literal message spec.md §8 requires on
// an unrecognized top-level item: not an auto-joined list of every
// production's first-token descriptions, but this one fixed phrase.
const topLevelItemDesc = "import statement or rule definition"

// parseTopLevelItem parses SOURCE_FILE's one repeated production,
// TOP_LEVEL_ITEM ::= IMPORT_STMT | INCLUDE_STMT | RULE_DECL. Dispatch is
// direct on the next non-trivia token rather than PEG alternation,
// because none of the three productions share a prefix ambiguous
// enough to need backtracking, and direct dispatch lets the error case
// report the fixed phrase above instead of whatever expect() calls
// happened to run first inside each alternative.
func parseTopLevelItem(p *Parser) {
	next := p.tokens.PeekNonTrivia()
	switch next.ID {
	case token.IDImportKw:
		importStmt(p)
		return
	case token.IDIncludeKw:
		includeStmt(p)
		return
	case token.IDGlobalKw, token.IDPrivateKw, token.IDRuleKw:
		ruleDecl(p)
		return
	}

	sp := Span{next.Span.Start, next.Span.End}
	p.output.PushError("expecting "+topLevelItemDesc, sp)
	p.state = StateFailure

	p.begin(token.ERROR)
	for {
		t := p.tokens.PeekNonTrivia()
		if t.ID == token.IDEOF {
			break
		}
		if _, ok := topLevelStartSet.Contains(t.ID); ok {
			break
		}
		p.consumeTrivia()
		tok := p.tokens.Next()
		p.output.PushToken(token.ERROR, Span{tok.Span.Start, tok.Span.End})
	}
	p.end()
	if p.state == StateFailure {
		p.state = StateOK
	}
}

func importStmt(p *Parser) {
	p.begin(token.IMPORT_STMT)
	p.expect(setImportKw)
	p.expect(setStringLit)
	p.end()
}

func includeStmt(p *Parser) {
	p.begin(token.INCLUDE_STMT)
	p.expect(setIncludeKw)
	p.expect(setStringLit)
	p.end()
}

// RULE_DECL ::= RULE_MODS? 'rule' IDENT RULE_TAGS? '{'
//                 META_BLK? PATTERNS_BLK? CONDITION_BLK '}'
func ruleDecl(p *Parser) {
	p.begin(token.RULE_DECL)
	p.opt(func() { ruleMods(p) })
	p.expect(setRuleKw)
	p.expect(setIdent)
	p.ifNext(setColon, func() { ruleTags(p) })
	p.expect(setLBrace)
	p.ifNext(setMetaKw, func() { metaBlk(p) })
	p.ifNext(setStringsKw, func() { patternsBlk(p) })
	conditionBlk(p)
	p.expect(setRBrace)
	p.endWithRecovery(topLevelStartSet, topLevelStartSet.Describe())
}

// RULE_MODS ::= 'private' 'global'? | 'global' 'private'?
func ruleMods(p *Parser) {
	p.begin(token.RULE_MODS)
	a := p.beginAlt()
	a.Alt(func() {
		p.expect(setPrivateKw)
		p.opt(func() { p.expect(setGlobalKw) })
	})
	a.Alt(func() {
		p.expect(setGlobalKw)
		p.opt(func() { p.expect(setPrivateKw) })
	})
	a.End()
	p.end()
}

// RULE_TAGS ::= ':' IDENT+
func ruleTags(p *Parser) {
	p.begin(token.RULE_TAGS)
	p.expect(setColon)
	p.oneOrMore(func() { p.expect(setIdent) })
	p.endWithRecovery(ruleTagsRecoverySet, ruleTagsRecoverySet.Describe())
}

// META_BLK ::= 'meta' ':' META_DEF+
func metaBlk(p *Parser) {
	p.begin(token.META_BLK)
	p.expect(setMetaKw)
	p.expect(setColon)
	p.oneOrMore(func() { metaDef(p) })
	p.endWithRecovery(metaBlkRecoverySet, metaBlkRecoverySet.Describe())
}

// META_DEF ::= IDENT '=' ( '-'? (INTEGER_LIT|FLOAT_LIT)
//                        | STRING_LIT | 'true' | 'false' )
var setIntegerOrFloatLit = token.NewSet(token.INTEGER_LIT, token.FLOAT_LIT)
var setStringOrBoolLit = token.NewSet(token.STRING_LIT, token.TRUE_KW, token.FALSE_KW)

func metaDef(p *Parser) {
	p.begin(token.META_DEF)
	p.expect(setIdent)
	p.expect(setEqual)
	a := p.beginAlt()
	a.Alt(func() {
		p.opt(func() { p.expect(setMinus) })
		p.expect(setIntegerOrFloatLit)
	})
	a.Alt(func() { p.expect(setStringOrBoolLit) })
	a.End()
	p.end()
}

// PATTERNS_BLK ::= 'strings' ':' PATTERN_DEF+
func patternsBlk(p *Parser) {
	p.begin(token.PATTERNS_BLK)
	p.expect(setStringsKw)
	p.expect(setColon)
	p.oneOrMore(func() { patternDef(p) })
	p.endWithRecovery(patternsBlkRecoverySet, patternsBlkRecoverySet.Describe())
}

// PATTERN_DEF ::= PATTERN_IDENT '=' (STRING_LIT | REGEXP | HEX_PATTERN)
//                PATTERN_MODS?
func patternDef(p *Parser) {
	p.begin(token.PATTERN_DEF)
	p.expect(setPatternIdent)
	p.expect(setEqual)
	a := p.beginAlt()
	a.Alt(func() { p.expect(setStringLit) })
	a.Alt(func() { p.expect(setRegexp) })
	a.Alt(func() { hexPattern(p) })
	a.End()
	p.opt(func() { patternMods(p) })
	p.end()
}

func patternMods(p *Parser) {
	p.begin(token.PATTERN_MODS)
	p.oneOrMore(func() { patternMod(p) })
	p.end()
}

var setSimplePatternMod = token.NewSet(token.ASCII_KW, token.WIDE_KW, token.NOCASE_KW,
	token.PRIVATE_KW, token.FULLWORD_KW)

const patternModDesc = "pattern modifier"

// PATTERN_MOD ::= 'ascii'|'wide'|'nocase'|'private'|'fullword'
//               | ('base64'|'base64wide') ('(' STRING_LIT ')')?
//               | 'xor' ('(' INTEGER_LIT ('-' INTEGER_LIT)? ')')?
func patternMod(p *Parser) {
	p.begin(token.PATTERN_MOD)
	a := p.beginAlt()
	a.Alt(func() { p.expectD(setSimplePatternMod, patternModDesc) })
	a.Alt(func() {
		p.expectD(setBase64Kw, patternModDesc)
		p.cond(setLParen, func() {
			p.expect(setStringLit)
			p.expect(setRParen)
		})
	})
	a.Alt(func() {
		p.expectD(setXorKw, patternModDesc)
		p.cond(setLParen, func() {
			p.expect(setIntegerLit)
			p.cond(setHyphen, func() { p.expect(setIntegerLit) })
			p.expect(setRParen)
		})
	})
	a.End()
	p.end()
}

// HEX_PATTERN ::= '{' HEX_SUB_PATTERN '}'   -- enter hex-pattern mode
func hexPattern(p *Parser) {
	p.begin(token.HEX_PATTERN)
	p.expect(setLBrace)
	p.tokens.EnterHexPatternMode()
	hexSubPattern(p)
	p.expect(setRBrace)
	p.end()
}

// HEX_SUB_PATTERN ::= (HEX_BYTE|HEX_ALTERNATIVE)
//                    (HEX_JUMP* (HEX_BYTE|HEX_ALTERNATIVE))*
func hexSubPattern(p *Parser) {
	p.begin(token.HEX_SUB_PATTERN)
	hexByteOrAlt(p)
	p.zeroOrMore(func() {
		p.zeroOrMore(func() { hexJump(p) })
		hexByteOrAlt(p)
	})
	p.end()
}

func hexByteOrAlt(p *Parser) {
	a := p.beginAlt()
	a.Alt(func() { p.expect(setHexByte) })
	a.Alt(func() { hexAlternative(p) })
	a.End()
}

// HEX_ALTERNATIVE ::= '(' HEX_SUB_PATTERN ('|' HEX_SUB_PATTERN)* ')'
func hexAlternative(p *Parser) {
	p.begin(token.HEX_ALTERNATIVE)
	p.expect(setLParen)
	hexSubPattern(p)
	p.zeroOrMore(func() {
		p.expect(setPipe)
		hexSubPattern(p)
	})
	p.expect(setRParen)
	p.end()
}

// HEX_JUMP ::= '[' ( INTEGER_LIT? '-' INTEGER_LIT? | INTEGER_LIT ) ']'
//                                                 -- enter hex-jump mode
func hexJump(p *Parser) {
	p.begin(token.HEX_JUMP)
	p.expect(setLBracket)
	p.tokens.EnterHexJumpMode()
	a := p.beginAlt()
	a.Alt(func() {
		p.opt(func() { p.expect(setIntegerLit) })
		p.expect(setHyphen)
		p.opt(func() { p.expect(setIntegerLit) })
	})
	a.Alt(func() { p.expect(setIntegerLit) })
	a.End()
	p.expect(setRBracket)
	p.end()
}

// CONDITION_BLK ::= 'condition' ':' BOOLEAN_EXPR
func conditionBlk(p *Parser) {
	p.begin(token.CONDITION_BLK)
	p.expect(setConditionKw)
	p.expect(setColon)
	booleanExpr(p)
	p.endWithRecovery(conditionBlkRecoverySet, conditionBlkRecoverySet.Describe())
}

// BOOLEAN_EXPR ::= BOOLEAN_TERM (('and'|'or') BOOLEAN_TERM)*
func booleanExpr(p *Parser) {
	p.begin(token.BOOLEAN_EXPR)
	booleanTerm(p)
	p.zeroOrMore(func() {
		p.expectD(setAndOr, "operator")
		booleanTerm(p)
	})
	p.end()
}

// BOOLEAN_TERM ::= PATTERN_IDENT ( ('at' EXPR) | ('in' RANGE) )?
//                | 'true' | 'false'
//                | ('not'|'defined') BOOLEAN_TERM
//                | FOR_EXPR | OF_EXPR | WITH_EXPR
//                | EXPR ( COMPARE_OP EXPR )*
//                | '(' BOOLEAN_EXPR ')'
var setAtOrIn = token.NewSet(token.AT_KW, token.IN_KW)
var setTrueOrFalseKw = token.NewSet(token.TRUE_KW, token.FALSE_KW)

const booleanTermDesc = "expression"

func booleanTerm(p *Parser) {
	p.begin(token.BOOLEAN_TERM)
	a := p.beginAlt()
	a.Alt(func() {
		p.expectD(setPatternIdent, booleanTermDesc)
		p.ifNext(setAtOrIn, func() {
			b := p.beginAlt()
			b.Alt(func() {
				p.expect(setAt)
				expr(p)
			})
			b.Alt(func() {
				p.expect(setIn)
				rangeExpr(p)
			})
			b.End()
		})
	})
	a.Alt(func() { p.expectD(setTrueOrFalseKw, booleanTermDesc) })
	a.Alt(func() {
		p.expectD(setNotDefined, booleanTermDesc)
		booleanTerm(p)
	})
	a.Alt(func() { forExpr(p) })
	a.Alt(func() { ofExpr(p) })
	a.Alt(func() { withExpr(p) })
	a.Alt(func() {
		expr(p)
		p.zeroOrMore(func() {
			p.expectD(setCompareOp, booleanTermDesc)
			expr(p)
		})
	})
	a.Alt(func() {
		p.expectD(setLParen, booleanTermDesc)
		booleanExpr(p)
		p.expect(setRParen)
	})
	a.End()
	p.end()
}

// EXPR ::= TERM ( (ARITH|BIT|'.') TERM )*     -- no precedence climb
func expr(p *Parser) {
	p.cached(token.EXPR, func() {
		p.begin(token.EXPR)
		term(p)
		p.zeroOrMore(func() {
			p.expectD(setArithBit, "operator")
			term(p)
		})
		p.end()
	})
}

// TERM ::= FUNC_CALL
//        | PRIMARY_EXPR ( '[' EXPR ']' | '.' FUNC_CALL )?
func term(p *Parser) {
	p.begin(token.TERM)
	a := p.beginAlt()
	a.Alt(func() { funcCall(p) })
	a.Alt(func() {
		primaryExpr(p)
		p.opt(func() {
			b := p.beginAlt()
			b.Alt(func() {
				p.expect(setLBracketExp)
				expr(p)
				p.expect(setRBracket)
			})
			b.Alt(func() {
				p.expect(setDot)
				funcCall(p)
			})
			b.End()
		})
	})
	a.End()
	p.end()
}

// FUNC_CALL ::= IDENT '(' ( BOOLEAN_EXPR (',' BOOLEAN_EXPR)* )? ')'
func funcCall(p *Parser) {
	p.begin(token.FUNC_CALL)
	p.expectD(setIdent, "expression")
	p.expect(setLParen)
	p.opt(func() {
		booleanExpr(p)
		p.zeroOrMore(func() {
			p.expect(setComma)
			booleanExpr(p)
		})
	})
	p.expect(setRParen)
	p.end()
}

// RANGE ::= '(' EXPR '.' '.' EXPR ')'
func rangeExpr(p *Parser) {
	p.begin(token.RANGE)
	p.expect(setLParen)
	expr(p)
	p.expect(setDot)
	p.expect(setDot)
	expr(p)
	p.expect(setRParen)
	p.end()
}

// PRIMARY_EXPR ::= FLOAT_LIT | INTEGER_LIT | STRING_LIT | REGEXP
//                | 'filesize' | 'entrypoint'
//                | PATTERN_COUNT ('in' RANGE)?
//                | (PATTERN_OFFSET|PATTERN_LENGTH) ('[' EXPR ']')?
//                | '-' TERM | '~' TERM
//                | '(' EXPR ')'
//                | IDENT ( '.' IDENT !'(' )*
var setPrimaryLit = token.NewSet(token.FLOAT_LIT, token.INTEGER_LIT, token.STRING_LIT,
	token.REGEXP, token.FILESIZE_KW, token.ENTRYPOINT_KW)

const primaryExprDesc = "expression"

func primaryExpr(p *Parser) {
	p.cached(token.PRIMARY_EXPR, func() {
		p.begin(token.PRIMARY_EXPR)
		a := p.beginAlt()
		a.Alt(func() { p.expectD(setPrimaryLit, primaryExprDesc) })
		a.Alt(func() {
			p.expectD(setPatternCnt, primaryExprDesc)
			p.cond(setIn, func() { rangeExpr(p) })
		})
		a.Alt(func() {
			p.expectD(setPatternOffLen, primaryExprDesc)
			p.cond(setLBracketExp, func() {
				expr(p)
				p.expect(setRBracket)
			})
		})
		a.Alt(func() {
			p.expectD(setMinus, primaryExprDesc)
			term(p)
		})
		a.Alt(func() {
			p.expectD(setBitwiseNot, primaryExprDesc)
			term(p)
		})
		a.Alt(func() {
			p.expectD(setLParen, primaryExprDesc)
			expr(p)
			p.expect(setRParen)
		})
		a.Alt(func() {
			p.expectD(setIdent, primaryExprDesc)
			p.zeroOrMore(func() {
				p.expect(setDot)
				p.expect(setIdent)
				p.not(func() { p.expect(setLParen) })
			})
		})
		a.End()
		p.end()
	})
}

// FOR_EXPR ::= 'for' QUANTIFIER (
//                'of' ('them' | PATTERN_IDENT_TUPLE)
//              | IDENT (',' IDENT)* 'in' ITERABLE )
//              ':' '(' BOOLEAN_EXPR ')'
func forExpr(p *Parser) {
	p.begin(token.FOR_EXPR)
	p.expect(setForKw)
	quantifier(p)
	a := p.beginAlt()
	a.Alt(func() {
		p.expect(setOfKw)
		b := p.beginAlt()
		b.Alt(func() { p.expect(setThemKw) })
		b.Alt(func() { patternIdentTuple(p) })
		b.End()
	})
	a.Alt(func() {
		p.expect(setIdent)
		p.zeroOrMore(func() {
			p.expect(setComma)
			p.expect(setIdent)
		})
		p.expect(setIn)
		iterable(p)
	})
	a.End()
	p.expect(setColon)
	p.expect(setLParen)
	booleanExpr(p)
	p.expect(setRParen)
	p.end()
}

// OF_EXPR ::= QUANTIFIER 'of' (
//               ('them'|PATTERN_IDENT_TUPLE) (('at' EXPR)|('in' RANGE))?
//             | BOOLEAN_EXPR_TUPLE !( 'at' | 'in' ) )
func ofExpr(p *Parser) {
	p.begin(token.OF_EXPR)
	quantifier(p)
	p.expect(setOfKw)
	a := p.beginAlt()
	a.Alt(func() {
		b := p.beginAlt()
		b.Alt(func() { p.expect(setThemKw) })
		b.Alt(func() { patternIdentTuple(p) })
		b.End()
		p.ifNext(setAtOrIn, func() {
			c := p.beginAlt()
			c.Alt(func() {
				p.expect(setAt)
				expr(p)
			})
			c.Alt(func() {
				p.expect(setIn)
				rangeExpr(p)
			})
			c.End()
		})
	})
	a.Alt(func() {
		booleanExprTuple(p)
		p.not(func() { p.expect(setAtOrIn) })
	})
	a.End()
	p.end()
}

// WITH_EXPR ::= 'with' WITH_DECLS ':' '(' BOOLEAN_EXPR ')'
func withExpr(p *Parser) {
	p.begin(token.WITH_EXPR)
	p.expect(setWithKw)
	withDeclarations(p)
	p.expect(setColon)
	p.expect(setLParen)
	booleanExpr(p)
	p.expect(setRParen)
	p.end()
}

// WITH_DECLS ::= WITH_DECL (',' WITH_DECL)*
func withDeclarations(p *Parser) {
	p.begin(token.WITH_DECLS)
	withDecl(p)
	p.zeroOrMore(func() {
		p.expect(setComma)
		withDecl(p)
	})
	p.end()
}

// WITH_DECL ::= IDENT '=' EXPR
func withDecl(p *Parser) {
	p.begin(token.WITH_DECL)
	p.expect(setIdent)
	p.expect(setEqual)
	expr(p)
	p.end()
}

// QUANTIFIER ::= 'all' | 'none' | 'any'
//              | PRIMARY_EXPR '%'
//              | EXPR !'%'
//
// Ordered exactly this way: PRIMARY_EXPR '%' must be tried before
// EXPR !'%', because EXPR can itself contain '%' as the modulus
// operator (spec.md §4.6, §9).
func quantifier(p *Parser) {
	p.begin(token.QUANTIFIER)
	a := p.beginAlt()
	a.Alt(func() { p.expect(setAllNoneAny) })
	a.Alt(func() {
		primaryExpr(p)
		p.expect(setPercent)
	})
	a.Alt(func() {
		expr(p)
		p.not(func() { p.expect(setPercent) })
	})
	a.End()
	p.end()
}

// ITERABLE ::= RANGE | EXPR_TUPLE | EXPR
func iterable(p *Parser) {
	p.begin(token.ITERABLE)
	a := p.beginAlt()
	a.Alt(func() { rangeExpr(p) })
	a.Alt(func() { exprTuple(p) })
	a.Alt(func() { expr(p) })
	a.End()
	p.end()
}

// BOOLEAN_EXPR_TUPLE ::= '(' BOOLEAN_EXPR (',' BOOLEAN_EXPR)* ')'
func booleanExprTuple(p *Parser) {
	p.begin(token.BOOLEAN_EXPR_TUPLE)
	p.expect(setLParen)
	booleanExpr(p)
	p.zeroOrMore(func() {
		p.expect(setComma)
		booleanExpr(p)
	})
	p.expect(setRParen)
	p.end()
}

// EXPR_TUPLE ::= '(' EXPR (',' EXPR)* ')'
func exprTuple(p *Parser) {
	p.begin(token.EXPR_TUPLE)
	p.expect(setLParen)
	expr(p)
	p.zeroOrMore(func() {
		p.expect(setComma)
		expr(p)
	})
	p.expect(setRParen)
	p.end()
}

// PATTERN_IDENT_TUPLE ::= '(' PATTERN_IDENT '*'? (',' PATTERN_IDENT '*'?)* ')'
func patternIdentTuple(p *Parser) {
	p.begin(token.PATTERN_IDENT_TUPLE)
	p.expect(setLParen)
	p.expect(setPatternIdent)
	p.opt(func() { p.expect(setAsterisk) })
	p.zeroOrMore(func() {
		p.expect(setComma)
		p.expect(setPatternIdent)
		p.opt(func() { p.expect(setAsterisk) })
	})
	p.expect(setRParen)
	p.end()
}

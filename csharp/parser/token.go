package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment
	TokenDirective

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenRealLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenInterpolatedString
	TokenRawString
	TokenTrue
	TokenFalse
	TokenNull

	// Opaque source text captured by the parser (statements, initializers)
	TokenRaw

	// Keywords
	TokenAbstract
	TokenAs
	TokenBase
	TokenBool
	TokenBreak
	TokenByte
	TokenCase
	TokenCatch
	TokenChar
	TokenChecked
	TokenClass
	TokenConst
	TokenContinue
	TokenDecimal
	TokenDefault
	TokenDelegate
	TokenDo
	TokenDouble
	TokenElse
	TokenEnum
	TokenEvent
	TokenExplicit
	TokenExtern
	TokenFinally
	TokenFixed
	TokenFloat
	TokenFor
	TokenForeach
	TokenGoto
	TokenIf
	TokenImplicit
	TokenIn
	TokenInt
	TokenInterface
	TokenInternal
	TokenIs
	TokenLock
	TokenLong
	TokenNamespace
	TokenNew
	TokenObject
	TokenOperator
	TokenOut
	TokenOverride
	TokenParams
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenReadonly
	TokenRef
	TokenReturn
	TokenSbyte
	TokenSealed
	TokenShort
	TokenSizeof
	TokenStackalloc
	TokenStatic
	TokenString
	TokenStruct
	TokenSwitch
	TokenThis
	TokenThrow
	TokenTry
	TokenTypeof
	TokenUint
	TokenUlong
	TokenUnchecked
	TokenUnsafe
	TokenUshort
	TokenUsing
	TokenVirtual
	TokenVoid
	TokenVolatile
	TokenWhile

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenDotDot
	TokenColon
	TokenColonColon
	TokenQuestion
	TokenQuestionDot
	TokenCoalesce
	TokenCoalesceAssign
	TokenArrow
	TokenPointerArrow

	TokenAssign
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShl
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenIncrement
	TokenDecrement
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenShlAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:                "EOF",
	TokenError:              "Error",
	TokenWhitespace:         "Whitespace",
	TokenComment:            "Comment",
	TokenLineComment:        "LineComment",
	TokenDirective:          "Directive",
	TokenIdent:              "Identifier",
	TokenIntLiteral:         "IntLiteral",
	TokenRealLiteral:        "RealLiteral",
	TokenCharLiteral:        "CharLiteral",
	TokenStringLiteral:      "StringLiteral",
	TokenInterpolatedString: "InterpolatedString",
	TokenRawString:          "RawString",
	TokenTrue:               "true",
	TokenFalse:              "false",
	TokenNull:               "null",
	TokenRaw:                "Raw",
	TokenAbstract:           "abstract",
	TokenAs:                 "as",
	TokenBase:               "base",
	TokenBool:               "bool",
	TokenBreak:              "break",
	TokenByte:               "byte",
	TokenCase:               "case",
	TokenCatch:              "catch",
	TokenChar:               "char",
	TokenChecked:            "checked",
	TokenClass:              "class",
	TokenConst:              "const",
	TokenContinue:           "continue",
	TokenDecimal:            "decimal",
	TokenDefault:            "default",
	TokenDelegate:           "delegate",
	TokenDo:                 "do",
	TokenDouble:             "double",
	TokenElse:               "else",
	TokenEnum:               "enum",
	TokenEvent:              "event",
	TokenExplicit:           "explicit",
	TokenExtern:             "extern",
	TokenFinally:            "finally",
	TokenFixed:              "fixed",
	TokenFloat:              "float",
	TokenFor:                "for",
	TokenForeach:            "foreach",
	TokenGoto:               "goto",
	TokenIf:                 "if",
	TokenImplicit:           "implicit",
	TokenIn:                 "in",
	TokenInt:                "int",
	TokenInterface:          "interface",
	TokenInternal:           "internal",
	TokenIs:                 "is",
	TokenLock:               "lock",
	TokenLong:               "long",
	TokenNamespace:          "namespace",
	TokenNew:                "new",
	TokenObject:             "object",
	TokenOperator:           "operator",
	TokenOut:                "out",
	TokenOverride:           "override",
	TokenParams:             "params",
	TokenPrivate:            "private",
	TokenProtected:          "protected",
	TokenPublic:             "public",
	TokenReadonly:           "readonly",
	TokenRef:                "ref",
	TokenReturn:             "return",
	TokenSbyte:              "sbyte",
	TokenSealed:             "sealed",
	TokenShort:              "short",
	TokenSizeof:             "sizeof",
	TokenStackalloc:         "stackalloc",
	TokenStatic:             "static",
	TokenString:             "string",
	TokenStruct:             "struct",
	TokenSwitch:             "switch",
	TokenThis:               "this",
	TokenThrow:              "throw",
	TokenTry:                "try",
	TokenTypeof:             "typeof",
	TokenUint:               "uint",
	TokenUlong:              "ulong",
	TokenUnchecked:          "unchecked",
	TokenUnsafe:             "unsafe",
	TokenUshort:             "ushort",
	TokenUsing:              "using",
	TokenVirtual:            "virtual",
	TokenVoid:               "void",
	TokenVolatile:           "volatile",
	TokenWhile:              "while",
	TokenLParen:             "(",
	TokenRParen:             ")",
	TokenLBrace:             "{",
	TokenRBrace:             "}",
	TokenLBracket:           "[",
	TokenRBracket:           "]",
	TokenSemicolon:          ";",
	TokenComma:              ",",
	TokenDot:                ".",
	TokenDotDot:             "..",
	TokenColon:              ":",
	TokenColonColon:         "::",
	TokenQuestion:           "?",
	TokenQuestionDot:        "?.",
	TokenCoalesce:           "??",
	TokenCoalesceAssign:     "??=",
	TokenArrow:              "=>",
	TokenPointerArrow:       "->",
	TokenAssign:             "=",
	TokenEQ:                 "==",
	TokenNE:                 "!=",
	TokenLT:                 "<",
	TokenLE:                 "<=",
	TokenGT:                 ">",
	TokenGE:                 ">=",
	TokenAnd:                "&&",
	TokenOr:                 "||",
	TokenNot:                "!",
	TokenBitAnd:             "&",
	TokenBitOr:              "|",
	TokenBitXor:             "^",
	TokenBitNot:             "~",
	TokenShl:                "<<",
	TokenPlus:               "+",
	TokenMinus:              "-",
	TokenStar:               "*",
	TokenSlash:              "/",
	TokenPercent:            "%",
	TokenIncrement:          "++",
	TokenDecrement:          "--",
	TokenPlusAssign:         "+=",
	TokenMinusAssign:        "-=",
	TokenStarAssign:         "*=",
	TokenSlashAssign:        "/=",
	TokenPercentAssign:      "%=",
	TokenAndAssign:          "&=",
	TokenOrAssign:           "|=",
	TokenXorAssign:          "^=",
	TokenShlAssign:          "<<=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTrivia reports whether tokens of this kind are dropped before parsing.
func (k TokenKind) IsTrivia() bool {
	switch k {
	case TokenWhitespace, TokenComment, TokenLineComment, TokenDirective:
		return true
	}
	return false
}

// IsPredefinedType reports whether the keyword names a built-in type.
func (k TokenKind) IsPredefinedType() bool {
	switch k {
	case TokenBool, TokenByte, TokenChar, TokenDecimal, TokenDouble,
		TokenFloat, TokenInt, TokenLong, TokenObject, TokenSbyte,
		TokenShort, TokenString, TokenUint, TokenUlong, TokenUshort,
		TokenVoid:
		return true
	}
	return false
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

var keywords = map[string]TokenKind{
	"abstract":   TokenAbstract,
	"as":         TokenAs,
	"base":       TokenBase,
	"bool":       TokenBool,
	"break":      TokenBreak,
	"byte":       TokenByte,
	"case":       TokenCase,
	"catch":      TokenCatch,
	"char":       TokenChar,
	"checked":    TokenChecked,
	"class":      TokenClass,
	"const":      TokenConst,
	"continue":   TokenContinue,
	"decimal":    TokenDecimal,
	"default":    TokenDefault,
	"delegate":   TokenDelegate,
	"do":         TokenDo,
	"double":     TokenDouble,
	"else":       TokenElse,
	"enum":       TokenEnum,
	"event":      TokenEvent,
	"explicit":   TokenExplicit,
	"extern":     TokenExtern,
	"false":      TokenFalse,
	"finally":    TokenFinally,
	"fixed":      TokenFixed,
	"float":      TokenFloat,
	"for":        TokenFor,
	"foreach":    TokenForeach,
	"goto":       TokenGoto,
	"if":         TokenIf,
	"implicit":   TokenImplicit,
	"in":         TokenIn,
	"int":        TokenInt,
	"interface":  TokenInterface,
	"internal":   TokenInternal,
	"is":         TokenIs,
	"lock":       TokenLock,
	"long":       TokenLong,
	"namespace":  TokenNamespace,
	"new":        TokenNew,
	"null":       TokenNull,
	"object":     TokenObject,
	"operator":   TokenOperator,
	"out":        TokenOut,
	"override":   TokenOverride,
	"params":     TokenParams,
	"private":    TokenPrivate,
	"protected":  TokenProtected,
	"public":     TokenPublic,
	"readonly":   TokenReadonly,
	"ref":        TokenRef,
	"return":     TokenReturn,
	"sbyte":      TokenSbyte,
	"sealed":     TokenSealed,
	"short":      TokenShort,
	"sizeof":     TokenSizeof,
	"stackalloc": TokenStackalloc,
	"static":     TokenStatic,
	"string":     TokenString,
	"struct":     TokenStruct,
	"switch":     TokenSwitch,
	"this":       TokenThis,
	"throw":      TokenThrow,
	"true":       TokenTrue,
	"try":        TokenTry,
	"typeof":     TokenTypeof,
	"uint":       TokenUint,
	"ulong":      TokenUlong,
	"unchecked":  TokenUnchecked,
	"unsafe":     TokenUnsafe,
	"ushort":     TokenUshort,
	"using":      TokenUsing,
	"virtual":    TokenVirtual,
	"void":       TokenVoid,
	"volatile":   TokenVolatile,
	"while":      TokenWhile,
}

// LookupKeyword returns the keyword kind for ident, or TokenIdent.
// Contextual keywords (get, set, partial, record, var, ...) are identifiers.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

/*
Copyright 2016 Google Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package ast defines the concrete syntax tree produced by the parser.
//
// Each node owns its children. The parent reference is a back-pointer that
// is assigned by Link when the child is attached and is only meant for
// upward navigation.
package ast

import (
	"math/big"
	"sync/atomic"
)

// MaxChildNodeDepth is the deepest subtree the parser will build before it
// replaces the offending node with an error node.
const MaxChildNodeDepth = 256

// ---------------------------------------------------------------------------

// IDSource hands out node ids. It is safe for concurrent use, so parsers
// running in parallel may share one.
type IDSource struct {
	last atomic.Int64
}

// Next returns a fresh id.
func (s *IDSource) Next() int64 {
	return s.last.Add(1)
}

// DefaultIDs is used by parsers that are not given an IDSource.
var DefaultIDs = &IDSource{}

// ---------------------------------------------------------------------------

type Node interface {
	Kind() Kind
	ID() int64
	Range() Range
	Parent() Node
	MaxChildDepth() int
	nodeBase() *NodeBase
}
type Nodes []Node

// ---------------------------------------------------------------------------

type NodeBase struct {
	id            int64
	rng           Range
	parent        Node
	maxChildDepth int
}

func NewNodeBase(ids *IDSource, r Range) NodeBase {
	if ids == nil {
		ids = DefaultIDs
	}
	return NodeBase{id: ids.Next(), rng: r}
}

func (n *NodeBase) ID() int64 {
	return n.id
}

func (n *NodeBase) Range() Range {
	return n.rng
}

func (n *NodeBase) Parent() Node {
	return n.parent
}

func (n *NodeBase) MaxChildDepth() int {
	return n.maxChildDepth
}

func (n *NodeBase) nodeBase() *NodeBase {
	return n
}

// ---------------------------------------------------------------------------

// Operator covers binary, unary, comparison and augmented assignment
// operators.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpAddEqual
	OpAssign
	OpBitwiseAnd
	OpBitwiseAndEqual
	OpBitwiseInvert
	OpBitwiseOr
	OpBitwiseOrEqual
	OpBitwiseXor
	OpBitwiseXorEqual
	OpDivide
	OpDivideEqual
	OpEquals
	OpFloorDivide
	OpFloorDivideEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpLeftShift
	OpLeftShiftEqual
	OpLessOrGreaterThan
	OpLessThan
	OpLessThanOrEqual
	OpMatrixMultiply
	OpMatrixMultiplyEqual
	OpMod
	OpModEqual
	OpMultiply
	OpMultiplyEqual
	OpNotEquals
	OpPower
	OpPowerEqual
	OpRightShift
	OpRightShiftEqual
	OpSubtract
	OpSubtractEqual
	OpWalrus

	// Keyword operators.
	OpAnd
	OpOr
	OpNot
	OpIs
	OpIsNot
	OpIn
	OpNotIn
)

var opStrings = []string{
	OpNone:                "",
	OpAdd:                 "+",
	OpAddEqual:            "+=",
	OpAssign:              "=",
	OpBitwiseAnd:          "&",
	OpBitwiseAndEqual:     "&=",
	OpBitwiseInvert:       "~",
	OpBitwiseOr:           "|",
	OpBitwiseOrEqual:      "|=",
	OpBitwiseXor:          "^",
	OpBitwiseXorEqual:     "^=",
	OpDivide:              "/",
	OpDivideEqual:         "/=",
	OpEquals:              "==",
	OpFloorDivide:         "//",
	OpFloorDivideEqual:    "//=",
	OpGreaterThan:         ">",
	OpGreaterThanOrEqual:  ">=",
	OpLeftShift:           "<<",
	OpLeftShiftEqual:      "<<=",
	OpLessOrGreaterThan:   "<>",
	OpLessThan:            "<",
	OpLessThanOrEqual:     "<=",
	OpMatrixMultiply:      "@",
	OpMatrixMultiplyEqual: "@=",
	OpMod:                 "%",
	OpModEqual:            "%=",
	OpMultiply:            "*",
	OpMultiplyEqual:       "*=",
	OpNotEquals:           "!=",
	OpPower:               "**",
	OpPowerEqual:          "**=",
	OpRightShift:          ">>",
	OpRightShiftEqual:     ">>=",
	OpSubtract:            "-",
	OpSubtractEqual:       "-=",
	OpWalrus:              ":=",
	OpAnd:                 "and",
	OpOr:                  "or",
	OpNot:                 "not",
	OpIs:                  "is",
	OpIsNot:               "is not",
	OpIn:                  "in",
	OpNotIn:               "not in",
}

func (o Operator) String() string {
	if o < 0 || int(o) >= len(opStrings) {
		return "<unknown operator>"
	}
	return opStrings[o]
}

// OperatorMap maps the spelling of every symbolic operator to its value.
var OperatorMap = map[string]Operator{}

func init() {
	for op, s := range opStrings {
		if s != "" && Operator(op) < OpAnd {
			OperatorMap[s] = Operator(op)
		}
	}
}

// IsAugmentedAssignment reports whether o is one of += -= and friends.
func (o Operator) IsAugmentedAssignment() bool {
	switch o {
	case OpAddEqual, OpSubtractEqual, OpMultiplyEqual, OpDivideEqual, OpModEqual,
		OpBitwiseAndEqual, OpBitwiseOrEqual, OpBitwiseXorEqual, OpLeftShiftEqual,
		OpRightShiftEqual, OpPowerEqual, OpFloorDivideEqual, OpMatrixMultiplyEqual:
		return true
	}
	return false
}

// IsComparison reports whether o may appear in a comparison chain.
func (o Operator) IsComparison() bool {
	switch o {
	case OpEquals, OpNotEquals, OpLessThan, OpLessThanOrEqual, OpGreaterThan,
		OpGreaterThanOrEqual, OpLessOrGreaterThan, OpIs, OpIsNot, OpIn, OpNotIn:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------

// StringFlags describe the prefix and quoting of a string token.
type StringFlags int

const (
	StringSingleQuote StringFlags = 1 << iota
	StringDoubleQuote
	StringTriplicate
	StringRaw
	StringUnicode
	StringBytes
	StringFormat
	StringUnterminated

	StringQuoteTypeMask = StringSingleQuote | StringDoubleQuote | StringTriplicate
)

func (f StringFlags) Has(flag StringFlags) bool {
	return f&flag != 0
}

// ---------------------------------------------------------------------------

// ErrorCategory tells IDE consumers what was missing at an error node.
type ErrorCategory int

const (
	ErrMissingIn ErrorCategory = iota
	ErrMissingElse
	ErrMissingExpression
	ErrMissingIndexOrSlice
	ErrMissingDecoratorCallName
	ErrMissingCallCloseParen
	ErrMissingIndexCloseBracket
	ErrMissingMemberAccessName
	ErrMissingTupleCloseParen
	ErrMissingListCloseBracket
	ErrMissingFunctionParameterList
	ErrMissingPattern
	ErrMissingPatternSubject
	ErrMissingDictValue
	ErrMissingKeywordArgValue
	ErrMaxDepthExceeded
)

var errorCategoryStrings = []string{
	ErrMissingIn:                    "MissingIn",
	ErrMissingElse:                  "MissingElse",
	ErrMissingExpression:            "MissingExpression",
	ErrMissingIndexOrSlice:          "MissingIndexOrSlice",
	ErrMissingDecoratorCallName:     "MissingDecoratorCallName",
	ErrMissingCallCloseParen:        "MissingCallCloseParen",
	ErrMissingIndexCloseBracket:     "MissingIndexCloseBracket",
	ErrMissingMemberAccessName:      "MissingMemberAccessName",
	ErrMissingTupleCloseParen:       "MissingTupleCloseParen",
	ErrMissingListCloseBracket:      "MissingListCloseBracket",
	ErrMissingFunctionParameterList: "MissingFunctionParameterList",
	ErrMissingPattern:               "MissingPattern",
	ErrMissingPatternSubject:        "MissingPatternSubject",
	ErrMissingDictValue:             "MissingDictValue",
	ErrMissingKeywordArgValue:       "MissingKeywordArgValue",
	ErrMaxDepthExceeded:             "MaxDepthExceeded",
}

func (c ErrorCategory) String() string {
	return errorCategoryStrings[c]
}

// ---------------------------------------------------------------------------
// Module structure

// Module is the root of a parsed file.
type Module struct {
	NodeBase
	Statements Nodes
}

// Suite is the indented (or inline) body of a compound statement.
type Suite struct {
	NodeBase
	Statements Nodes
}

// StatementList is a line of simple statements separated by semicolons.
type StatementList struct {
	NodeBase
	Statements Nodes
}

// Error stands in for a construct that could not be parsed. Child holds
// whatever was parsed before the problem, if anything.
type Error struct {
	NodeBase
	Category   ErrorCategory
	Child      Node
	Decorators []*Decorator
}

// ---------------------------------------------------------------------------
// Compound statements

type If struct {
	NodeBase
	Test    Node
	IfSuite *Suite
	// ElseSuite is either a *Suite or an *If for elif chains.
	ElseSuite Node
	IsElif    bool
}

type While struct {
	NodeBase
	Test       Node
	WhileSuite *Suite
	ElseSuite  *Suite
}

type For struct {
	NodeBase
	IsAsync     bool
	AsyncRange  Range
	Target      Node
	Iterable    Node
	ForSuite    *Suite
	ElseSuite   *Suite
	TypeComment *String
}

type Try struct {
	NodeBase
	TrySuite      *Suite
	ExceptClauses []*Except
	ElseSuite     *Suite
	FinallySuite  *Suite
}

type Except struct {
	NodeBase
	TypeExpr      Node
	Name          *Name
	ExceptSuite   *Suite
	IsExceptGroup bool
}

type With struct {
	NodeBase
	IsAsync     bool
	AsyncRange  Range
	WithItems   []*WithItem
	Suite       *Suite
	TypeComment *String
}

type WithItem struct {
	NodeBase
	Expr   Node
	Target Node
}

type Decorator struct {
	NodeBase
	Expr Node
}

type Function struct {
	NodeBase
	Decorators       []*Decorator
	IsAsync          bool
	Name             *Name
	TypeParameters   *TypeParameterList
	Parameters       []*Parameter
	ReturnAnnotation Node
	// FunctionAnnotationComment is back-filled from a "# type:" comment
	// that follows the colon.
	FunctionAnnotationComment *FunctionAnnotation
	Suite                     *Suite
}

type ParameterCategory int

const (
	ParamSimple ParameterCategory = iota
	ParamArgsList
	ParamKwargsDict
)

// Parameter is a function or lambda parameter. A bare "*" or "/" separator
// has a nil Name.
type Parameter struct {
	NodeBase
	Category              ParameterCategory
	Name                  *Name
	TypeAnnotation        Node
	TypeAnnotationComment Node
	DefaultValue          Node
}

type Class struct {
	NodeBase
	Decorators     []*Decorator
	Name           *Name
	TypeParameters *TypeParameterList
	Arguments      []*Argument
	Suite          *Suite
}

type TypeParameterCategory int

const (
	TypeVar TypeParameterCategory = iota
	TypeVarTuple
	ParamSpec
)

type TypeParameter struct {
	NodeBase
	Name        *Name
	Category    TypeParameterCategory
	BoundExpr   Node
	DefaultExpr Node
}

type TypeParameterList struct {
	NodeBase
	Parameters []*TypeParameter
}

// TypeAlias is the "type X[T] = ..." statement.
type TypeAlias struct {
	NodeBase
	Name           *Name
	TypeParameters *TypeParameterList
	Expr           Node
}

type Match struct {
	NodeBase
	Subject Node
	Cases   []*Case
}

type Case struct {
	NodeBase
	Pattern       Node
	IsIrrefutable bool
	Guard         Node
	Suite         *Suite
}

// ---------------------------------------------------------------------------
// Simple statements

// Assignment is "left = right". For a chain "a = b = 1" the outer node's
// Right is the nested assignment of the earlier target.
type Assignment struct {
	NodeBase
	Left                         Node
	Right                        Node
	TypeAnnotationComment        Node
	ChainedTypeAnnotationComment Node
}

// AugmentedAssignment is "left op= right". DestExpr is a deep copy of Left
// that stands for the value being written. It is not a child; its parent is
// the assignment and its descendants are distinct from those of Left.
type AugmentedAssignment struct {
	NodeBase
	Left     Node
	Operator Operator
	Right    Node
	DestExpr Node
}

// TypeAnnotation is "value: annotation".
type TypeAnnotation struct {
	NodeBase
	ValueExpr  Node
	Annotation Node
}

type Assert struct {
	NodeBase
	Test    Node
	Message Node
}

type Del struct {
	NodeBase
	Targets Nodes
}

type Pass struct{ NodeBase }

type Break struct{ NodeBase }

type Continue struct{ NodeBase }

type Return struct {
	NodeBase
	Expr Node
}

type Raise struct {
	NodeBase
	Expr     Node
	FromExpr Node
}

type Global struct {
	NodeBase
	Names []*Name
}

type Nonlocal struct {
	NodeBase
	Names []*Name
}

// ModuleName is a possibly relative dotted module path.
type ModuleName struct {
	NodeBase
	LeadingDots    int
	NameParts      []*Name
	HasTrailingDot bool
}

type Import struct {
	NodeBase
	List []*ImportAs
}

type ImportAs struct {
	NodeBase
	Module *ModuleName
	Alias  *Name
}

type ImportFrom struct {
	NodeBase
	Module           *ModuleName
	Imports          []*ImportFromAs
	IsWildcardImport bool
	WildcardRange    Range
	UsesParens       bool
	MissingImport    bool
}

type ImportFromAs struct {
	NodeBase
	Name  *Name
	Alias *Name
}

// ---------------------------------------------------------------------------
// Expressions

type UnaryOperation struct {
	NodeBase
	Operator       Operator
	OperatorRange  Range
	Expr           Node
	HasParentheses bool
}

type BinaryOperation struct {
	NodeBase
	Left           Node
	Operator       Operator
	OperatorRange  Range
	Right          Node
	HasParentheses bool
}

// AssignmentExpression is the walrus form "name := value".
type AssignmentExpression struct {
	NodeBase
	Name           *Name
	WalrusRange    Range
	Right          Node
	HasParentheses bool
}

type Await struct {
	NodeBase
	Expr           Node
	HasParentheses bool
}

type Ternary struct {
	NodeBase
	IfExpr   Node
	TestExpr Node
	ElseExpr Node
}

// Unpack is a starred expression "*x".
type Unpack struct {
	NodeBase
	Expr Node
}

type Tuple struct {
	NodeBase
	Exprs            Nodes
	EnclosedInParens bool
}

// Comprehension covers list/set/dict comprehensions and generators. Expr
// is a *DictionaryKeyEntry for dict comprehensions.
type Comprehension struct {
	NodeBase
	Expr           Node
	ForIfNodes     Nodes
	IsGenerator    bool
	HasParentheses bool
}

type ComprehensionFor struct {
	NodeBase
	IsAsync    bool
	AsyncRange Range
	Target     Node
	Iterable   Node
}

type ComprehensionIf struct {
	NodeBase
	Test Node
}

// Index is a subscript "left[items]".
type Index struct {
	NodeBase
	LeftExpr      Node
	Items         []*Argument
	TrailingComma bool
}

// Slice is "start:end:step" inside a subscript; each part may be nil.
type Slice struct {
	NodeBase
	Start Node
	End   Node
	Step  Node
}

type Yield struct {
	NodeBase
	Expr Node
}

type YieldFrom struct {
	NodeBase
	Expr Node
}

type MemberAccess struct {
	NodeBase
	LeftExpr Node
	Member   *Name
}

type Lambda struct {
	NodeBase
	Parameters []*Parameter
	Expr       Node
}

type Name struct {
	NodeBase
	Value string
}

type ConstantKind int

const (
	ConstNone ConstantKind = iota
	ConstTrue
	ConstFalse
	ConstDebug
	ConstEllipsis
)

var constantStrings = []string{
	ConstNone:     "None",
	ConstTrue:     "True",
	ConstFalse:    "False",
	ConstDebug:    "__debug__",
	ConstEllipsis: "...",
}

func (c ConstantKind) String() string {
	return constantStrings[c]
}

type Constant struct {
	NodeBase
	Value ConstantKind
}

type Number struct {
	NodeBase
	IsInteger   bool
	IsImaginary bool
	Value       float64
	// IntValue is set for integers.
	IntValue *big.Int
}

type String struct {
	NodeBase
	Flags             StringFlags
	Value             string
	HasUnescapeErrors bool
}

// FormatString is an f-string. Middles holds the literal text segments.
type FormatString struct {
	NodeBase
	Flags       StringFlags
	Middles     []string
	FieldExprs  Nodes
	FormatExprs Nodes
}

// StringList is one or more adjacent string literals. Annotation is set
// when the contents were parsed as a forward-reference type annotation.
type StringList struct {
	NodeBase
	Strings        Nodes
	Annotation     Node
	HasParentheses bool
}

type Dictionary struct {
	NodeBase
	Entries Nodes
}

type DictionaryKeyEntry struct {
	NodeBase
	Key   Node
	Value Node
}

type DictionaryExpandEntry struct {
	NodeBase
	Expr Node
}

type Set struct {
	NodeBase
	Entries Nodes
}

type List struct {
	NodeBase
	Entries Nodes
}

type ArgumentCategory int

const (
	ArgSimple ArgumentCategory = iota
	ArgUnpackedList
	ArgUnpackedDictionary
)

type Argument struct {
	NodeBase
	Category  ArgumentCategory
	Name      *Name
	ValueExpr Node
}

type Call struct {
	NodeBase
	LeftExpr      Node
	Arguments     []*Argument
	TrailingComma bool
}

// FunctionAnnotation is the signature carried in a "# type: (...) -> r"
// comment.
type FunctionAnnotation struct {
	NodeBase
	IsParamListEllipsis  bool
	ParamTypeAnnotations Nodes
	ReturnTypeAnnotation Node
}

// ---------------------------------------------------------------------------
// Patterns

type PatternSequence struct {
	NodeBase
	Entries Nodes
	// StarEntryIndex is -1 when no entry is starred.
	StarEntryIndex int
}

// PatternAs is "p1 | p2 ... as name"; Target may be nil.
type PatternAs struct {
	NodeBase
	OrPatterns Nodes
	Target     *Name
}

type PatternLiteral struct {
	NodeBase
	Expr Node
}

type PatternClass struct {
	NodeBase
	ClassName Node
	Arguments []*PatternClassArgument
}

type PatternClassArgument struct {
	NodeBase
	Name    *Name
	Pattern Node
}

type PatternCapture struct {
	NodeBase
	Target     *Name
	IsStar     bool
	IsWildcard bool
}

type PatternMapping struct {
	NodeBase
	Entries Nodes
}

type PatternMappingKeyEntry struct {
	NodeBase
	Key   Node
	Value Node
}

type PatternMappingExpandEntry struct {
	NodeBase
	Target *Name
}

type PatternValue struct {
	NodeBase
	Expr *MemberAccess
}

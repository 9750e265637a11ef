/*
Copyright 2017 Google Inc. All rights reserved.

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

package ast

// Kind tags the variant of a Node.
type Kind int

const (
	KindError Kind = iota
	KindArgument
	KindAssert
	KindAssignment
	KindAssignmentExpression
	KindAugmentedAssignment
	KindAwait
	KindBinaryOperation
	KindBreak
	KindCall
	KindCase
	KindClass
	KindComprehension
	KindComprehensionFor
	KindComprehensionIf
	KindConstant
	KindContinue
	KindDecorator
	KindDel
	KindDictionary
	KindDictionaryExpandEntry
	KindDictionaryKeyEntry
	KindExcept
	KindFor
	KindFormatString
	KindFunction
	KindFunctionAnnotation
	KindGlobal
	KindIf
	KindImport
	KindImportAs
	KindImportFrom
	KindImportFromAs
	KindIndex
	KindLambda
	KindList
	KindMatch
	KindMemberAccess
	KindModule
	KindModuleName
	KindName
	KindNonlocal
	KindNumber
	KindParameter
	KindPass
	KindPatternAs
	KindPatternCapture
	KindPatternClass
	KindPatternClassArgument
	KindPatternLiteral
	KindPatternMapping
	KindPatternMappingExpandEntry
	KindPatternMappingKeyEntry
	KindPatternSequence
	KindPatternValue
	KindRaise
	KindReturn
	KindSet
	KindSlice
	KindStatementList
	KindString
	KindStringList
	KindSuite
	KindTernary
	KindTry
	KindTuple
	KindTypeAlias
	KindTypeAnnotation
	KindTypeParameter
	KindTypeParameterList
	KindUnaryOperation
	KindUnpack
	KindWhile
	KindWith
	KindWithItem
	KindYield
	KindYieldFrom
)

var kindStrings = []string{
	KindError:                     "Error",
	KindArgument:                  "Argument",
	KindAssert:                    "Assert",
	KindAssignment:                "Assignment",
	KindAssignmentExpression:      "AssignmentExpression",
	KindAugmentedAssignment:       "AugmentedAssignment",
	KindAwait:                     "Await",
	KindBinaryOperation:           "BinaryOperation",
	KindBreak:                     "Break",
	KindCall:                      "Call",
	KindCase:                      "Case",
	KindClass:                     "Class",
	KindComprehension:             "Comprehension",
	KindComprehensionFor:          "ComprehensionFor",
	KindComprehensionIf:           "ComprehensionIf",
	KindConstant:                  "Constant",
	KindContinue:                  "Continue",
	KindDecorator:                 "Decorator",
	KindDel:                       "Del",
	KindDictionary:                "Dictionary",
	KindDictionaryExpandEntry:     "DictionaryExpandEntry",
	KindDictionaryKeyEntry:        "DictionaryKeyEntry",
	KindExcept:                    "Except",
	KindFor:                       "For",
	KindFormatString:              "FormatString",
	KindFunction:                  "Function",
	KindFunctionAnnotation:        "FunctionAnnotation",
	KindGlobal:                    "Global",
	KindIf:                        "If",
	KindImport:                    "Import",
	KindImportAs:                  "ImportAs",
	KindImportFrom:                "ImportFrom",
	KindImportFromAs:              "ImportFromAs",
	KindIndex:                     "Index",
	KindLambda:                    "Lambda",
	KindList:                      "List",
	KindMatch:                     "Match",
	KindMemberAccess:              "MemberAccess",
	KindModule:                    "Module",
	KindModuleName:                "ModuleName",
	KindName:                      "Name",
	KindNonlocal:                  "Nonlocal",
	KindNumber:                    "Number",
	KindParameter:                 "Parameter",
	KindPass:                      "Pass",
	KindPatternAs:                 "PatternAs",
	KindPatternCapture:            "PatternCapture",
	KindPatternClass:              "PatternClass",
	KindPatternClassArgument:      "PatternClassArgument",
	KindPatternLiteral:            "PatternLiteral",
	KindPatternMapping:            "PatternMapping",
	KindPatternMappingExpandEntry: "PatternMappingExpandEntry",
	KindPatternMappingKeyEntry:    "PatternMappingKeyEntry",
	KindPatternSequence:           "PatternSequence",
	KindPatternValue:              "PatternValue",
	KindRaise:                     "Raise",
	KindReturn:                    "Return",
	KindSet:                       "Set",
	KindSlice:                     "Slice",
	KindStatementList:             "StatementList",
	KindString:                    "String",
	KindStringList:                "StringList",
	KindSuite:                     "Suite",
	KindTernary:                   "Ternary",
	KindTry:                       "Try",
	KindTuple:                     "Tuple",
	KindTypeAlias:                 "TypeAlias",
	KindTypeAnnotation:            "TypeAnnotation",
	KindTypeParameter:             "TypeParameter",
	KindTypeParameterList:         "TypeParameterList",
	KindUnaryOperation:            "UnaryOperation",
	KindUnpack:                    "Unpack",
	KindWhile:                     "While",
	KindWith:                      "With",
	KindWithItem:                  "WithItem",
	KindYield:                     "Yield",
	KindYieldFrom:                 "YieldFrom",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindStrings) {
		return "<unknown kind>"
	}
	return kindStrings[k]
}

func (*Error) Kind() Kind { return KindError }
func (*Argument) Kind() Kind { return KindArgument }
func (*Assert) Kind() Kind { return KindAssert }
func (*Assignment) Kind() Kind { return KindAssignment }
func (*AssignmentExpression) Kind() Kind { return KindAssignmentExpression }
func (*AugmentedAssignment) Kind() Kind { return KindAugmentedAssignment }
func (*Await) Kind() Kind { return KindAwait }
func (*BinaryOperation) Kind() Kind { return KindBinaryOperation }
func (*Break) Kind() Kind { return KindBreak }
func (*Call) Kind() Kind { return KindCall }
func (*Case) Kind() Kind { return KindCase }
func (*Class) Kind() Kind { return KindClass }
func (*Comprehension) Kind() Kind { return KindComprehension }
func (*ComprehensionFor) Kind() Kind { return KindComprehensionFor }
func (*ComprehensionIf) Kind() Kind { return KindComprehensionIf }
func (*Constant) Kind() Kind { return KindConstant }
func (*Continue) Kind() Kind { return KindContinue }
func (*Decorator) Kind() Kind { return KindDecorator }
func (*Del) Kind() Kind { return KindDel }
func (*Dictionary) Kind() Kind { return KindDictionary }
func (*DictionaryExpandEntry) Kind() Kind { return KindDictionaryExpandEntry }
func (*DictionaryKeyEntry) Kind() Kind { return KindDictionaryKeyEntry }
func (*Except) Kind() Kind { return KindExcept }
func (*For) Kind() Kind { return KindFor }
func (*FormatString) Kind() Kind { return KindFormatString }
func (*Function) Kind() Kind { return KindFunction }
func (*FunctionAnnotation) Kind() Kind { return KindFunctionAnnotation }
func (*Global) Kind() Kind { return KindGlobal }
func (*If) Kind() Kind { return KindIf }
func (*Import) Kind() Kind { return KindImport }
func (*ImportAs) Kind() Kind { return KindImportAs }
func (*ImportFrom) Kind() Kind { return KindImportFrom }
func (*ImportFromAs) Kind() Kind { return KindImportFromAs }
func (*Index) Kind() Kind { return KindIndex }
func (*Lambda) Kind() Kind { return KindLambda }
func (*List) Kind() Kind { return KindList }
func (*Match) Kind() Kind { return KindMatch }
func (*MemberAccess) Kind() Kind { return KindMemberAccess }
func (*Module) Kind() Kind { return KindModule }
func (*ModuleName) Kind() Kind { return KindModuleName }
func (*Name) Kind() Kind { return KindName }
func (*Nonlocal) Kind() Kind { return KindNonlocal }
func (*Number) Kind() Kind { return KindNumber }
func (*Parameter) Kind() Kind { return KindParameter }
func (*Pass) Kind() Kind { return KindPass }
func (*PatternAs) Kind() Kind { return KindPatternAs }
func (*PatternCapture) Kind() Kind { return KindPatternCapture }
func (*PatternClass) Kind() Kind { return KindPatternClass }
func (*PatternClassArgument) Kind() Kind { return KindPatternClassArgument }
func (*PatternLiteral) Kind() Kind { return KindPatternLiteral }
func (*PatternMapping) Kind() Kind { return KindPatternMapping }
func (*PatternMappingExpandEntry) Kind() Kind { return KindPatternMappingExpandEntry }
func (*PatternMappingKeyEntry) Kind() Kind { return KindPatternMappingKeyEntry }
func (*PatternSequence) Kind() Kind { return KindPatternSequence }
func (*PatternValue) Kind() Kind { return KindPatternValue }
func (*Raise) Kind() Kind { return KindRaise }
func (*Return) Kind() Kind { return KindReturn }
func (*Set) Kind() Kind { return KindSet }
func (*Slice) Kind() Kind { return KindSlice }
func (*StatementList) Kind() Kind { return KindStatementList }
func (*String) Kind() Kind { return KindString }
func (*StringList) Kind() Kind { return KindStringList }
func (*Suite) Kind() Kind { return KindSuite }
func (*Ternary) Kind() Kind { return KindTernary }
func (*Try) Kind() Kind { return KindTry }
func (*Tuple) Kind() Kind { return KindTuple }
func (*TypeAlias) Kind() Kind { return KindTypeAlias }
func (*TypeAnnotation) Kind() Kind { return KindTypeAnnotation }
func (*TypeParameter) Kind() Kind { return KindTypeParameter }
func (*TypeParameterList) Kind() Kind { return KindTypeParameterList }
func (*UnaryOperation) Kind() Kind { return KindUnaryOperation }
func (*Unpack) Kind() Kind { return KindUnpack }
func (*While) Kind() Kind { return KindWhile }
func (*With) Kind() Kind { return KindWith }
func (*WithItem) Kind() Kind { return KindWithItem }
func (*Yield) Kind() Kind { return KindYield }
func (*YieldFrom) Kind() Kind { return KindYieldFrom }

// IsStatement reports whether k is a module, suite or statement node. The
// depth ceiling only applies below these.
func (k Kind) IsStatement() bool {
	switch k {
	case KindModule, KindSuite, KindStatementList,
		KindIf, KindWhile, KindFor, KindTry, KindExcept, KindWith,
		KindFunction, KindClass, KindDecorator, KindMatch, KindCase, KindTypeAlias,
		KindAssignment, KindAugmentedAssignment, KindAssert, KindDel, KindPass,
		KindBreak, KindContinue, KindReturn, KindRaise, KindGlobal, KindNonlocal,
		KindImport, KindImportAs, KindImportFrom, KindImportFromAs:
		return true
	}
	return false
}

// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package function

import (
	"fmt"
	"strconv"
)

// operator name -> opcode for the allowed Type 4 operators (PDF spec Table 42)
var calcOpNames = map[string]calcOp{
	"abs": opAbs, "add": opAdd, "atan": opAtan, "ceiling": opCeiling,
	"cos": opCos, "cvi": opCvi, "cvr": opCvr, "div": opDiv,
	"exp": opExp, "floor": opFloor, "idiv": opIdiv, "ln": opLn,
	"log": opLog, "mod": opMod, "mul": opMul, "neg": opNeg,
	"round": opRound, "sin": opSin, "sqrt": opSqrt, "sub": opSub,
	"truncate": opTruncate,
	"and":      opAnd, "bitshift": opBitshift, "eq": opEq, "ge": opGe,
	"gt": opGt, "le": opLe, "lt": opLt, "ne": opNe, "not": opNot,
	"or": opOr, "xor": opXor,
	"copy": opCopy, "dup": opDup, "exch": opExch, "index": opIndex,
	"pop": opPop, "roll": opRoll,
}

// parseCalculator converts a Type 4 PostScript program to a runnable
// calcProgram.
func parseCalculator(program string) (calcProgram, error) {
	tokens, err := lexProgram(program)
	if err != nil {
		return nil, err
	}
	return assembleTokens(tokens)
}

// calcToken types
const (
	tokInt   = iota // ival holds the integer
	tokReal         // fval holds the float
	tokTrue         // boolean true
	tokFalse        // boolean false
	tokName         // sval holds the operator name
	tokOpen         // {
	tokClose        // }
)

type calcToken struct {
	typ  int
	ival int
	fval float64
	sval string
}

// lexProgram scans a Type 4 PostScript program into tokens.
func lexProgram(src string) ([]calcToken, error) {
	var tokens []calcToken
	i := 0
	for i < len(src) {
		c := src[i]

		// whitespace
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\x00' {
			i++
			continue
		}

		// comment
		if c == '%' {
			for i < len(src) && src[i] != '\n' && src[i] != '\r' {
				i++
			}
			continue
		}

		// braces
		if c == '{' {
			tokens = append(tokens, calcToken{typ: tokOpen})
			i++
			continue
		}
		if c == '}' {
			tokens = append(tokens, calcToken{typ: tokClose})
			i++
			continue
		}

		// number or name: scan until delimiter
		start := i
		for i < len(src) {
			ch := src[i]
			if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\x00' ||
				ch == '{' || ch == '}' || ch == '%' {
				break
			}
			i++
		}
		word := src[start:i]

		// try integer
		if iv, err := strconv.ParseInt(word, 10, 64); err == nil {
			tokens = append(tokens, calcToken{typ: tokInt, ival: int(iv)})
			continue
		}

		// try real
		if fv, err := strconv.ParseFloat(word, 64); err == nil {
			tokens = append(tokens, calcToken{typ: tokReal, fval: fv})
			continue
		}

		// keywords
		if word == "true" {
			tokens = append(tokens, calcToken{typ: tokTrue})
			continue
		}
		if word == "false" {
			tokens = append(tokens, calcToken{typ: tokFalse})
			continue
		}

		// operator name (including "if" and "ifelse")
		tokens = append(tokens, calcToken{typ: tokName, sval: word})
	}
	return tokens, nil
}

// assembleTokens translates a calcToken stream to bytecode instructions.
func assembleTokens(tokens []calcToken) ([]calcInstr, error) {
	code, _, err := assembleBlock(tokens, 0, false)
	return code, err
}

// assembleBlock compiles tokens starting at pos. If inBlock is true, it stops
// at the matching '}'. Returns the compiled instructions and the next calcToken
// position.
func assembleBlock(tokens []calcToken, pos int, inBlock bool) ([]calcInstr, int, error) {
	var code []calcInstr

	// pending holds compiled blocks collected from { ... } that have not
	// yet been consumed by "if" or "ifelse".
	var pending [][]calcInstr

	for pos < len(tokens) {
		tok := tokens[pos]
		pos++

		switch tok.typ {
		case tokInt:
			code = append(code, calcInstr{op: opPushInt, ival: tok.ival})
		case tokReal:
			code = append(code, calcInstr{op: opPushReal, fval: tok.fval})
		case tokTrue:
			code = append(code, calcInstr{op: opPushTrue})
		case tokFalse:
			code = append(code, calcInstr{op: opPushFalse})

		case tokOpen:
			// compile the sub-block
			block, next, err := assembleBlock(tokens, pos, true)
			if err != nil {
				return nil, 0, err
			}
			pos = next
			pending = append(pending, block)

		case tokClose:
			if !inBlock {
				return nil, 0, fmt.Errorf("unexpected '}'")
			}
			if len(pending) > 0 {
				return nil, 0, fmt.Errorf("unused procedure body in block")
			}
			return code, pos, nil

		case tokName:
			name := tok.sval
			switch name {
			case "if":
				if len(pending) < 1 {
					return nil, 0, fmt.Errorf("'if' requires one procedure body")
				}
				body := pending[len(pending)-1]
				pending = pending[:len(pending)-1]
				// emit: jumpIfFalse over body
				code = append(code, calcInstr{op: opJumpIfFalse, ival: len(body)})
				code = append(code, body...)

			case "ifelse":
				if len(pending) < 2 {
					return nil, 0, fmt.Errorf("'ifelse' requires two procedure bodies")
				}
				falseBody := pending[len(pending)-1]
				trueBody := pending[len(pending)-2]
				pending = pending[:len(pending)-2]
				// emit: jumpIfFalse (skip trueBody + jump), trueBody, jump (skip falseBody), falseBody
				code = append(code, calcInstr{op: opJumpIfFalse, ival: len(trueBody) + 1})
				code = append(code, trueBody...)
				code = append(code, calcInstr{op: opJump, ival: len(falseBody)})
				code = append(code, falseBody...)

			default:
				op, ok := calcOpNames[name]
				if !ok {
					return nil, 0, fmt.Errorf("unknown operator %q", name)
				}
				code = append(code, calcInstr{op: op})
			}
		}
	}

	if inBlock {
		return nil, 0, fmt.Errorf("unterminated '{'")
	}
	if len(pending) > 0 {
		return nil, 0, fmt.Errorf("unused procedure body at end of program")
	}
	return code, pos, nil
}

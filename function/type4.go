// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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
	"errors"
	"fmt"
	"io"

	"seehuhn.de/go/pdf"
)

// Type4 represents a Type 4 PostScript calculator function that uses a subset
// of the PostScript language to define arbitrary calculations.
type Type4 struct {
	// Domain defines the valid input ranges as [min0, max0, min1, max1, ...]
	Domain []float64

	// Range defines the valid output ranges as [min0, max0, min1, max1, ...]
	Range []float64

	// Program contains the PostScript code (without enclosing braces).
	Program string

	// code is the compiled bytecode for Program, built once on first Apply
	// (or eagerly by readType4).
	code calcProgram
}

// FunctionType returns 4 for Type 4 functions.
func (f *Type4) FunctionType() int {
	return 4
}

// Shape returns the number of input and output values of the function.
func (f *Type4) Shape() (int, int) {
	m := len(f.Domain) / 2
	n := len(f.Range) / 2
	return m, n
}

// Apply applies the function to the given input values and returns the output values.
func (f *Type4) Apply(inputs ...float64) []float64 {
	m, n := f.Shape()
	if len(inputs) != m {
		panic(fmt.Sprintf("expected %d inputs, got %d", m, len(inputs)))
	}

	if f.code == nil {
		code, err := parseCalculator(f.Program)
		if err != nil {
			return make([]float64, n)
		}
		f.code = code
	}

	stack := make([]calcValue, 0, m+8)
	for i := 0; i < m; i++ {
		stack = append(stack, newRealValue(clip(inputs[i], f.Domain[2*i], f.Domain[2*i+1])))
	}

	result, err := f.code.run(stack)
	if err != nil || len(result) < n {
		return make([]float64, n)
	}

	outputs := make([]float64, n)
	// Outputs are the top n stack values, in the order they were pushed.
	base := len(result) - n
	for i := 0; i < n; i++ {
		outputs[i] = clip(result[base+i].asFloat(), f.Range[2*i], f.Range[2*i+1])
	}

	return outputs
}

// validate checks if the Type4 function is properly configured.
func (f *Type4) validate() error {
	m, n := f.Shape()

	if len(f.Domain) != 2*m {
		return newInvalidFunctionError(4, "Domain", "length must be 2*m, got %d", len(f.Domain))
	}
	if len(f.Range) != 2*n {
		return newInvalidFunctionError(4, "Range", "length must be 2*n, got %d", len(f.Range))
	}
	if _, err := parseCalculator(f.Program); err != nil {
		return newInvalidFunctionError(4, "Program", "%s", err)
	}
	return nil
}

// readType4 reads a Type 4 PostScript calculator function from a PDF stream.
func readType4(r pdf.Getter, stream *pdf.Stream) (*Type4, error) {
	if stream == nil {
		return nil, &pdf.MalformedFileError{Err: errors.New("Type 4 function requires a stream")}
	}
	d := stream.Dict
	domain, err := floatsFromPDF(r, d["Domain"])
	if err != nil {
		return nil, fmt.Errorf("failed to read Domain: %w", err)
	}

	rangeArray, err := floatsFromPDF(r, d["Range"])
	if err != nil {
		return nil, fmt.Errorf("failed to read Range: %w", err)
	}

	programBytes, err := io.ReadAll(byteSourceReader{stream.R})
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}

	program := trimOuterBraces(string(programBytes))

	f := &Type4{
		Domain:  domain,
		Range:   rangeArray,
		Program: program,
	}

	code, err := parseCalculator(f.Program)
	if err != nil {
		return nil, newInvalidFunctionError(4, "Program", "%s", err)
	}
	f.code = code

	if err := f.validate(); err != nil {
		return nil, err
	}

	return f, nil
}

// trimOuterBraces strips a single pair of enclosing '{' '}' if present.
func trimOuterBraces(s string) string {
	start, end := 0, len(s)
	for start < end && isPSSpace(s[start]) {
		start++
	}
	for end > start && isPSSpace(s[end-1]) {
		end--
	}
	if end-start >= 2 && s[start] == '{' && s[end-1] == '}' {
		return s[start+1 : end-1]
	}
	return s[start:end]
}

func isPSSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\x00'
}

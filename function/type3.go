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

	"seehuhn.de/go/pdf"
)

// Type3 represents a piecewise defined function with a single input.
// The PDF specification refers to this as a "stitching function".
type Type3 struct {
	// Domain defines the overall input range as [min, max].
	Domain []float64

	// Range (optional) defines the valid output ranges as [min0, max0, min1,
	// max1, ...].
	Range []float64

	// Functions is the array of k functions to be combined.
	// All functions must have 1 input and the same number of outputs.
	Functions []pdf.Function

	// Bounds defines the boundaries between subdomains.
	// It must have k-1 elements, in increasing order, within the domain.
	// The first function applies to the range [Domain[0], Bounds[0]),
	// the second to [Bounds[0], Bounds[1]), ..., the last to
	// [Bounds[k-2], Domain[1]].
	Bounds []float64

	// Encode maps each subdomain to corresponding function's domain as
	// [min0, max0, min1, max1, ...].
	Encode []float64
}

// FunctionType returns 3.
func (f *Type3) FunctionType() int {
	return 3
}

// Shape returns the number of input and output values of the function.
func (f *Type3) Shape() (int, int) {
	_, n := f.Functions[0].Shape()
	return 1, n
}

// Apply applies the function to the given input value and returns the output values.
func (f *Type3) Apply(inputs ...float64) []float64 {
	if len(inputs) != 1 {
		panic(fmt.Sprintf("Type 3 function expects 1 input, got %d", len(inputs)))
	}
	x := inputs[0]

	if len(f.Domain) >= 2 {
		x = clip(x, f.Domain[0], f.Domain[1])
	}

	k := len(f.Functions)
	subdomainIndex, subdomain := f.findSubdomain(x, k)

	encodeMin := f.Encode[2*subdomainIndex]
	encodeMax := f.Encode[2*subdomainIndex+1]
	encodedInput := interpolate(x, subdomain[0], subdomain[1], encodeMin, encodeMax)

	outputs := f.Functions[subdomainIndex].Apply(encodedInput)

	_, n := f.Shape()
	if len(f.Range) >= 2*n {
		for i := range n {
			outputs[i] = clip(outputs[i], f.Range[2*i], f.Range[2*i+1])
		}
	}

	return outputs
}

// findSubdomain determines which subdomain the input x belongs to and returns
// the subdomain index and the corresponding domain boundaries.
// This implements the PDF specification rules for Type 3 function intervals:
//   - Normal intervals are half-open [a, b), closed on left, open on right
//   - Last interval is always closed on right [a, b]
//   - Special case: when Domain[0] = Bounds[0], first interval is [Domain[0], Bounds[0]]
//     (closed on both sides) and second interval is (Bounds[0], ...] (open on left)
func (f *Type3) findSubdomain(x float64, k int) (int, [2]float64) {
	if len(f.Domain) < 2 {
		return 0, [2]float64{0, 1}
	}

	domain0, domain1 := f.Domain[0], f.Domain[1]

	if len(f.Bounds) == 0 {
		return 0, [2]float64{domain0, domain1}
	}

	specialCase := domain0 == f.Bounds[0]

	if specialCase && x == domain0 {
		return 0, [2]float64{domain0, f.Bounds[0]}
	}

	if !specialCase && x < f.Bounds[0] {
		return 0, [2]float64{domain0, f.Bounds[0]}
	}

	for i := 0; i < len(f.Bounds)-1; i++ {
		leftBound := f.Bounds[i]
		rightBound := f.Bounds[i+1]
		if x < rightBound {
			return i + 1, [2]float64{leftBound, rightBound}
		}
	}

	lastIndex := len(f.Bounds) - 1
	return k - 1, [2]float64{f.Bounds[lastIndex], domain1}
}

// validate checks if the Type3 function is properly configured.
func (f *Type3) validate() error {
	if len(f.Domain) != 2 {
		return newInvalidFunctionError(3, "domain", "must have exactly 2 elements, got %d", len(f.Domain))
	}

	k := len(f.Functions)
	if k == 0 {
		return newInvalidFunctionError(3, "functions", "at least one function must be specified")
	}

	if len(f.Bounds) != k-1 {
		return newInvalidFunctionError(3, "bounds", "must have k-1 (%d) elements, got %d", k-1, len(f.Bounds))
	}

	domain0, domain1 := f.Domain[0], f.Domain[1]
	for i, bound := range f.Bounds {
		if bound <= domain0 || bound >= domain1 {
			return newInvalidFunctionError(3, "bounds", "bound[%d] = %f must be within domain [%f, %f]", i, bound, domain0, domain1)
		}
		if i > 0 && bound <= f.Bounds[i-1] {
			return newInvalidFunctionError(3, "bounds", "must be in increasing order: bounds[%d] = %f <= bounds[%d] = %f", i-1, f.Bounds[i-1], i, bound)
		}
	}

	if len(f.Encode) != 2*k {
		return newInvalidFunctionError(3, "encode", "must have 2*k (%d) elements, got %d", 2*k, len(f.Encode))
	}

	_, expectedN := f.Functions[0].Shape()
	for i, fn := range f.Functions {
		m, n := fn.Shape()
		if m != 1 {
			return newInvalidFunctionError(3, "functions", "function[%d] must have 1 input, got %d", i, m)
		}
		if n != expectedN {
			return newInvalidFunctionError(3, "functions", "function[%d] has %d outputs, expected %d", i, n, expectedN)
		}
	}

	if len(f.Range) != 0 && len(f.Range) != 2*expectedN {
		return fmt.Errorf("range must have 2*n (%d) elements or be empty", 2*expectedN)
	}

	return nil
}

// extractType3 reads a Type 3 piecewise defined function from a PDF dictionary.
func extractType3(r pdf.Getter, d pdf.Dict, cc *pdf.CycleChecker) (*Type3, error) {
	domain, err := floatsFromPDF(r, d["Domain"])
	if err != nil {
		return nil, fmt.Errorf("failed to read Domain: %w", err)
	}

	bounds, err := floatsFromPDF(r, d["Bounds"])
	if err != nil {
		return nil, fmt.Errorf("failed to read Bounds: %w", err)
	}

	encode, err := floatsFromPDF(r, d["Encode"])
	if err != nil {
		return nil, fmt.Errorf("failed to read Encode: %w", err)
	}

	functionsArray, err := pdf.GetArray(r, d["Functions"])
	if err != nil {
		return nil, fmt.Errorf("failed to read Functions: %w", err)
	}

	functions := make([]pdf.Function, len(functionsArray))
	for i, funcObj := range functionsArray {
		fn, err := extract(r, funcObj, cc)
		if err != nil {
			return nil, fmt.Errorf("failed to read function %d: %w", i, err)
		}
		functions[i] = fn
	}
	if len(functions) == 0 {
		return nil, errors.New("missing child functions")
	}

	f := &Type3{
		Domain:    domain,
		Functions: functions,
		Bounds:    bounds,
		Encode:    encode,
	}

	if len(f.Domain) == 0 {
		f.Domain = []float64{0, 1}
	}

	if rangeObj, ok := d["Range"]; ok {
		f.Range, err = floatsFromPDF(r, rangeObj)
		if err != nil {
			return nil, fmt.Errorf("failed to read Range: %w", err)
		}
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	return f, nil
}

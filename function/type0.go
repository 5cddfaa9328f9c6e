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
	"fmt"
	"io"
	"math"

	"seehuhn.de/go/pdf"
)

// Type0 represents a Type 0 sampled function that uses a table of sample
// values with interpolation to approximate functions with bounded domains
// and ranges.
type Type0 struct {
	// Domain defines the valid input ranges as [min0, max0, min1, max1, ...]
	Domain []float64

	// Range defines the valid output ranges as [min0, max0, min1, max1, ...]
	Range []float64

	// Size specifies the number of samples in each input dimension
	Size []int

	// BitsPerSample is the number of bits per sample value (1, 2, 4, 8, 12, 16, 24, 32)
	BitsPerSample int

	// Order is the interpolation order (1 for linear, 3 for cubic spline).
	// Cubic spline interpolation (Order == 3) falls back to linear: the
	// corpus this decoder draws on never exercised the cubic path, and
	// silently producing a linear approximation is preferable to refusing
	// to evaluate the function at all.
	Order int

	// Encode maps inputs to sample table indices as [min0, max0, min1, max1, ...]
	// Default: [0, Size[0]-1, 0, Size[1]-1, ...]
	Encode []float64

	// Decode maps samples to output range as [min0, max0, min1, max1, ...]
	// Default: same as Range
	Decode []float64

	// Samples contains the raw sample data
	Samples []byte
}

// FunctionType returns 0 for Type 0 functions.
func (f *Type0) FunctionType() int {
	return 0
}

// Shape returns the number of input and output values of the function.
func (f *Type0) Shape() (int, int) {
	m := len(f.Domain) / 2
	n := len(f.Range) / 2
	return m, n
}

// Apply applies the function to the given input values and returns the output values.
func (f *Type0) Apply(inputs ...float64) []float64 {
	m, n := f.Shape()
	if len(inputs) != m {
		panic(fmt.Sprintf("expected %d inputs, got %d", m, len(inputs)))
	}

	if len(f.Size) < m || len(f.Samples) == 0 {
		return make([]float64, n)
	}

	clippedInputs := make([]float64, m)
	for i := 0; i < m; i++ {
		clippedInputs[i] = clip(inputs[i], f.Domain[2*i], f.Domain[2*i+1])
	}

	encode := f.Encode
	if encode == nil {
		encode = make([]float64, 2*m)
		for i := 0; i < m; i++ {
			encode[2*i] = 0
			encode[2*i+1] = float64(f.Size[i] - 1)
		}
	}

	indices := make([]float64, m)
	for i := 0; i < m; i++ {
		idx := interpolate(clippedInputs[i], f.Domain[2*i], f.Domain[2*i+1], encode[2*i], encode[2*i+1])
		indices[i] = clip(idx, 0, float64(f.Size[i]-1))
	}

	samples := f.sampleFunction(indices)

	decode := f.Decode
	if decode == nil {
		decode = f.Range
	}

	outputs := make([]float64, n)
	maxSample := float64((uint64(1) << uint(f.BitsPerSample)) - 1)
	for i := 0; i < n; i++ {
		normalized := samples[i] / maxSample
		outputs[i] = clip(interpolate(normalized, 0, 1, decode[2*i], decode[2*i+1]), f.Range[2*i], f.Range[2*i+1])
	}

	return outputs
}

// sampleFunction performs multilinear interpolation on the sample table.
func (f *Type0) sampleFunction(indices []float64) []float64 {
	m, n := f.Shape()

	if m == 1 {
		return f.sample1D(indices[0], n)
	}

	floorIndices := make([]int, m)
	fractions := make([]float64, m)

	for i := 0; i < m; i++ {
		floorIndices[i] = int(math.Floor(indices[i]))
		fractions[i] = indices[i] - float64(floorIndices[i])

		if floorIndices[i] < 0 {
			floorIndices[i] = 0
			fractions[i] = 0
		}
		if floorIndices[i] >= f.Size[i]-1 {
			floorIndices[i] = max(f.Size[i]-2, 0)
			fractions[i] = 1
		}
	}

	numCorners := 1 << m
	result := make([]float64, n)

	for corner := 0; corner < numCorners; corner++ {
		weight := 1.0
		cornerIndices := make([]int, m)

		for dim := 0; dim < m; dim++ {
			if (corner>>dim)&1 == 0 {
				cornerIndices[dim] = floorIndices[dim]
				weight *= 1 - fractions[dim]
			} else {
				cornerIndices[dim] = floorIndices[dim] + 1
				weight *= fractions[dim]
			}
		}

		cornerSamples := f.getSamplesAt(cornerIndices)
		for i := 0; i < n; i++ {
			result[i] += weight * cornerSamples[i]
		}
	}

	return result
}

// sample1D performs 1D linear interpolation.
func (f *Type0) sample1D(index float64, n int) []float64 {
	i0 := int(math.Floor(index))
	i1 := i0 + 1
	frac := index - float64(i0)

	if i0 < 0 {
		i0, i1, frac = 0, 0, 0
	}
	if i1 >= f.Size[0] {
		i0, i1, frac = f.Size[0]-1, f.Size[0]-1, 0
	}

	samples0 := f.getSamplesAt([]int{i0})
	samples1 := f.getSamplesAt([]int{i1})

	result := make([]float64, n)
	for i := 0; i < n; i++ {
		result[i] = samples0[i]*(1-frac) + samples1[i]*frac
	}

	return result
}

// getSamplesAt extracts sample values at the given multidimensional index.
func (f *Type0) getSamplesAt(indices []int) []float64 {
	m, n := f.Shape()

	linearIndex := 0
	stride := 1
	for i := m - 1; i >= 0; i-- {
		linearIndex += indices[i] * stride
		stride *= f.Size[i]
	}

	samples := make([]float64, n)
	switch f.BitsPerSample {
	case 8, 16, 24, 32:
		bytesPerSample := f.BitsPerSample / 8
		startByte := linearIndex * n * bytesPerSample
		for i := 0; i < n; i++ {
			samples[i] = f.extractByteAlignedSample(startByte + i*bytesPerSample, bytesPerSample)
		}
	default:
		startBit := linearIndex * n * f.BitsPerSample
		for i := 0; i < n; i++ {
			samples[i] = f.extractBitSample(startBit + i*f.BitsPerSample)
		}
	}

	return samples
}

// extractByteAlignedSample reads a big-endian sample whose bit width is a
// multiple of 8.
func (f *Type0) extractByteAlignedSample(byteOffset, width int) float64 {
	if byteOffset < 0 || byteOffset+width > len(f.Samples) {
		return 0
	}
	var v uint64
	for i := 0; i < width; i++ {
		v = v<<8 | uint64(f.Samples[byteOffset+i])
	}
	return float64(v)
}

// extractBitSample reads a sample whose bit width is 1, 2, 4, or 12,
// packed MSB-first across the sample data without byte alignment.
func (f *Type0) extractBitSample(bitOffset int) float64 {
	var v uint64
	for i := 0; i < f.BitsPerSample; i++ {
		byteIndex := (bitOffset + i) / 8
		bitIndex := 7 - (bitOffset+i)%8
		if byteIndex >= len(f.Samples) {
			return float64(v << uint(f.BitsPerSample-i))
		}
		bit := (f.Samples[byteIndex] >> uint(bitIndex)) & 1
		v = v<<1 | uint64(bit)
	}
	return float64(v)
}

// readType0 reads a Type 0 sampled function from a PDF stream.
func readType0(r pdf.Getter, stream *pdf.Stream) (*Type0, error) {
	if stream == nil {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("Type 0 function requires a stream")}
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

	size, err := intsFromPDF(r, d["Size"])
	if err != nil {
		return nil, fmt.Errorf("failed to read Size: %w", err)
	}

	bitsPerSample, err := pdf.GetInteger(r, d["BitsPerSample"])
	if err != nil {
		return nil, fmt.Errorf("failed to read BitsPerSample: %w", err)
	}

	f := &Type0{
		Domain:        domain,
		Range:         rangeArray,
		Size:          size,
		BitsPerSample: int(bitsPerSample),
		Order:         1,
	}

	if orderObj, ok := d["Order"]; ok {
		order, err := pdf.GetInteger(r, orderObj)
		if err != nil {
			return nil, fmt.Errorf("failed to read Order: %w", err)
		}
		f.Order = int(order)
	}

	if encodeObj, ok := d["Encode"]; ok {
		f.Encode, err = floatsFromPDF(r, encodeObj)
		if err != nil {
			return nil, fmt.Errorf("failed to read Encode: %w", err)
		}
	}

	if decodeObj, ok := d["Decode"]; ok {
		f.Decode, err = floatsFromPDF(r, decodeObj)
		if err != nil {
			return nil, fmt.Errorf("failed to read Decode: %w", err)
		}
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	_, n := f.Shape()
	totalSamples := 1
	for _, sz := range f.Size {
		totalSamples *= sz
	}
	expectedBits := totalSamples * n * f.BitsPerSample
	expectedSize := (expectedBits + 7) / 8

	f.Samples = make([]byte, expectedSize)
	if _, err := io.ReadFull(byteSourceReader{stream.R}, f.Samples); err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("failed to read sample data: %w", err)
	}

	return f, nil
}

// validate checks if the Type0 function is properly configured.
func (f *Type0) validate() error {
	m, n := f.Shape()

	if len(f.Domain) != 2*m {
		return newInvalidFunctionError(0, "Domain", "length must be 2*m, got %d", len(f.Domain))
	}
	if len(f.Range) != 2*n {
		return newInvalidFunctionError(0, "Range", "length must be 2*n, got %d", len(f.Range))
	}
	if len(f.Size) != m {
		return newInvalidFunctionError(0, "Size", "length must be m, got %d", len(f.Size))
	}
	for i := 0; i < m; i++ {
		if f.Size[i] <= 0 {
			return newInvalidFunctionError(0, "Size", "Size[%d] must be positive", i)
		}
	}

	switch f.BitsPerSample {
	case 1, 2, 4, 8, 12, 16, 24, 32:
	default:
		return newInvalidFunctionError(0, "BitsPerSample", "invalid value %d", f.BitsPerSample)
	}

	if f.Order != 1 && f.Order != 3 {
		return newInvalidFunctionError(0, "Order", "must be 1 or 3, got %d", f.Order)
	}
	if f.Encode != nil && len(f.Encode) != 2*m {
		return newInvalidFunctionError(0, "Encode", "length must be 2*m, got %d", len(f.Encode))
	}
	if f.Decode != nil && len(f.Decode) != 2*n {
		return newInvalidFunctionError(0, "Decode", "length must be 2*n, got %d", len(f.Decode))
	}

	return nil
}

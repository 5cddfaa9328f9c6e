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

package shading

import (
	"errors"
	"io"
	"testing"

	"seehuhn.de/go/pdf"
)

func TestReadBitsAcrossBytes(t *testing.T) {
	// 0b10110011 0b01010101
	br := NewBitReader(pdf.NewSliceSource([]byte{0xB3, 0x55}))

	v, err := br.ReadBits(4)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0b1011 {
		t.Errorf("first nibble = %b, want 1011", v)
	}

	v, err = br.ReadBits(12)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0b001101010101 {
		t.Errorf("remaining 12 bits = %b, want 001101010101", v)
	}
}

func TestReadBits32FromEmptyBuffer(t *testing.T) {
	br := NewBitReader(pdf.NewSliceSource([]byte{0xFF, 0xFF, 0xFF, 0xFF}))
	v, err := br.ReadBits(32)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0xFFFFFFFF {
		t.Errorf("got %#x, want 0xffffffff", v)
	}
}

func TestAlignDiscardsPartialByte(t *testing.T) {
	br := NewBitReader(pdf.NewSliceSource([]byte{0xFF, 0x00}))
	if _, err := br.ReadBits(4); err != nil {
		t.Fatal(err)
	}
	br.Align()
	v, err := br.ReadBits(8)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0 {
		t.Errorf("got %#x after Align, want 0 (second byte)", v)
	}
}

func TestHasDataAtEndOfStream(t *testing.T) {
	br := NewBitReader(pdf.NewSliceSource([]byte{0x01}))
	has, err := br.HasData()
	if err != nil || !has {
		t.Fatalf("HasData = (%v, %v), want (true, nil)", has, err)
	}
	if _, err := br.ReadBits(8); err != nil {
		t.Fatal(err)
	}
	has, err = br.HasData()
	if err != nil || has {
		t.Fatalf("HasData at end = (%v, %v), want (false, nil)", has, err)
	}
}

type missingDataSource struct{ afterByte byte }

func (m *missingDataSource) ReadByte() (byte, error) {
	if m.afterByte != 0 {
		return 0, pdf.ErrMissingData
	}
	m.afterByte = 1
	return 0x42, nil
}

func TestMissingDataPropagates(t *testing.T) {
	br := NewBitReader(&missingDataSource{})
	if _, err := br.ReadBits(8); err != nil {
		t.Fatal(err)
	}
	_, err := br.ReadBits(8)
	if !errors.Is(err, pdf.ErrMissingData) {
		t.Errorf("got %v, want pdf.ErrMissingData", err)
	}
}

func TestReadCoordinateScalesIntoDecodeRange(t *testing.T) {
	// 8 bits, all set: value = 255, S = 1/255, should map exactly to decodeMax.
	br := NewBitReader(pdf.NewSliceSource([]byte{0xFF}))
	v, err := br.ReadCoordinate(8, 10, 20)
	if err != nil {
		t.Fatal(err)
	}
	if v != 20 {
		t.Errorf("got %g, want 20", v)
	}

	br = NewBitReader(pdf.NewSliceSource([]byte{0x00}))
	v, err = br.ReadCoordinate(8, 10, 20)
	if err != nil {
		t.Fatal(err)
	}
	if v != 10 {
		t.Errorf("got %g, want 10", v)
	}
}

func TestReadBitsInvalidWidth(t *testing.T) {
	br := NewBitReader(pdf.NewSliceSource(nil))
	if _, err := br.ReadBits(0); err == nil {
		t.Error("expected an error for width 0")
	}
	if _, err := br.ReadBits(33); err == nil {
		t.Error("expected an error for width 33")
	}
}

func TestReadBitsEOF(t *testing.T) {
	br := NewBitReader(pdf.NewSliceSource(nil))
	_, err := br.ReadBits(8)
	if !errors.Is(err, io.EOF) {
		t.Errorf("got %v, want io.EOF", err)
	}
}

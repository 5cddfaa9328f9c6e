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

package pdf

import (
	"errors"
	"fmt"
	"strings"
)

// MalformedFileError reports that the PDF file content being decoded does
// not conform to the PDF specification. Loc, if present, gives a trail of
// object identifiers or dictionary keys leading to the offending value.
type MalformedFileError struct {
	Err error
	Loc []string
}

func (e *MalformedFileError) Error() string {
	if len(e.Loc) == 0 {
		return fmt.Sprintf("malformed PDF file: %s", e.Err)
	}
	return fmt.Sprintf("malformed PDF file at %s: %s", strings.Join(e.Loc, " / "), e.Err)
}

func (e *MalformedFileError) Unwrap() error {
	return e.Err
}

// ErrMissingData is returned by a [ByteSource] when the requested bytes are
// not yet available but may become available later (for example, because
// they live past the end of a chunk that has been read so far). Decoders
// built on top of a ByteSource must propagate this error unchanged rather
// than treating it as end-of-stream or as a malformed file: the caller is
// expected to unwind to a point where it can retry once more data has
// arrived.
var ErrMissingData = errors.New("pdf: more data required to continue decoding")

// IsMissingData reports whether err is, or wraps, [ErrMissingData].
func IsMissingData(err error) bool {
	return errors.Is(err, ErrMissingData)
}

// UnsupportedFeatureError reports a PDF construct that is syntactically
// well-formed but that this decoder does not (yet) implement. Callers that
// can degrade gracefully, such as the shading package's Extract,
// may catch this error and substitute a placeholder result instead of
// failing the whole operation.
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("unsupported PDF feature: %s", e.Feature)
}

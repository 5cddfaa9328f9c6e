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

package colorspace

// == DeviceGray =============================================================

type spaceDeviceGray struct{}

// DeviceGray is the DeviceGray color space.
var DeviceGray Space = spaceDeviceGray{}

func (spaceDeviceGray) Channels() int { return 1 }

func (spaceDeviceGray) ToRGB(values []float64) (r, g, b float64) {
	g2 := clip01(values[0])
	return g2, g2, g2
}

// == DeviceRGB ==============================================================

type spaceDeviceRGB struct{}

// DeviceRGB is the DeviceRGB color space.
var DeviceRGB Space = spaceDeviceRGB{}

func (spaceDeviceRGB) Channels() int { return 3 }

func (spaceDeviceRGB) ToRGB(values []float64) (r, g, b float64) {
	return clip01(values[0]), clip01(values[1]), clip01(values[2])
}

// == DeviceCMYK =============================================================

type spaceDeviceCMYK struct{}

// DeviceCMYK is the DeviceCMYK color space.
var DeviceCMYK Space = spaceDeviceCMYK{}

func (spaceDeviceCMYK) Channels() int { return 4 }

// ToRGB uses the naive CMYK-to-RGB conversion (no ICC round trip):
// r = (1-c)(1-k), and similarly for g and b. This is the same formula
// PDF viewers use in the absence of a device color profile.
func (spaceDeviceCMYK) ToRGB(values []float64) (r, g, b float64) {
	c, m, y, k := clip01(values[0]), clip01(values[1]), clip01(values[2]), clip01(values[3])
	r = (1 - c) * (1 - k)
	g = (1 - m) * (1 - k)
	b = (1 - y) * (1 - k)
	return r, g, b
}

// SPDX-License-Identifier: EPL-2.0

// Package utils holds the sample arithmetic shared by nodes and sources:
// saturation to the int16 range, Q16.16 gain, float conversion and
// interpolation.
package utils

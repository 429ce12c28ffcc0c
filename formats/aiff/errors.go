// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input is not an AIFF or AIFF-C stream.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedAiffLayout covers missing format chunks and bit depths
	// that cannot be reduced to 16 bits.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)

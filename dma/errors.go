// SPDX-License-Identifier: EPL-2.0

package dma

import "errors"

var (
	ErrInvalidMode   = errors.New("invalid transfer mode")
	ErrInvalidFormat = errors.New("invalid word format")
)

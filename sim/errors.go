// SPDX-License-Identifier: EPL-2.0

package sim

import "errors"

var (
	ErrInvalidPeriod = errors.New("period must not be negative")
	ErrInvalidCPU    = errors.New("cpu index out of range")
	ErrNilGraph      = errors.New("graph is nil")
	ErrNoAdapters    = errors.New("at least one adapter is required")
)

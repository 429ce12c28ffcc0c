// SPDX-License-Identifier: EPL-2.0

package rtaudio

import "errors"

var (
	ErrNilSource       = errors.New("source is nil")
	ErrNoQueues        = errors.New("at least one queue is required")
	ErrNoChannels      = errors.New("source has no channels")
	ErrInvalidInterval = errors.New("interval must not be negative")
)

// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrNotPCM               = errors.New("only integer PCM WAV is supported")
	ErrInvalidFormat        = errors.New("invalid sample rate or channel count")
	ErrChannelMismatch      = errors.New("channel count mismatch")
)

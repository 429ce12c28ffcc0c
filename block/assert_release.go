// SPDX-License-Identifier: EPL-2.0

//go:build !rtaudiodebug

package block

const debugAsserts = false

func assertf(bool, string, ...any) {}

// SPDX-License-Identifier: EPL-2.0

//go:build rtaudiodebug

package block

import "fmt"

const debugAsserts = true

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("block: "+format, args...))
	}
}

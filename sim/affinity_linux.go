// SPDX-License-Identifier: EPL-2.0

//go:build linux

package sim

import "golang.org/x/sys/unix"

// setAffinity pins the calling thread to cpu.
func setAffinity(cpu int) error {
	var set unix.CPUSet
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}

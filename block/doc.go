// SPDX-License-Identifier: EPL-2.0

// Package block provides the fixed-capacity arena of audio sample blocks
// shared by the interrupt context and the graph cycle.
//
// A Pool holds PoolSize blocks of Samples 16-bit samples each. Slots are
// tracked by an atomic allocation bitmap and an atomic reference count per
// slot; nothing in this package takes a lock or allocates after the pool
// exists, so every operation may be called from an interrupt handler.
//
// Blocks are reached through two handle types:
//
//   - Exclusive: the unique, writable owner of a slot.
//   - Shared: one of possibly many read-only owners of a slot.
//
// Converting an Exclusive into a Shared is free. Converting a Shared back
// into an Exclusive reuses the slot when it is the sole owner and otherwise
// copies the data into a fresh slot (copy-on-write).
//
// The zero value of either handle is "absent". Absence is how pool
// exhaustion and silence are expressed everywhere in this module; it is
// never an error.
//
// Handles behave like moved values: every conversion (Share, Take, Reclaim,
// Release) leaves the source handle absent. Copying a handle struct by value
// and using both copies is a programming error; builds with the
// rtaudiodebug tag assert on the resulting double release.
package block

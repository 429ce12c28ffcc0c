// SPDX-License-Identifier: EPL-2.0

// Package nodes provides basic synthesis, gain and analysis nodes.
//
// Parameters and readings are kept in atomics: setters and readers may be
// called from user goroutines while the graph cycle runs Update on another.
package nodes

// SPDX-License-Identifier: EPL-2.0

// Package sim drives dma adapters and a graph from a host timer in place of
// the transfer-complete interrupt.
//
// An Engine owns a transmit and a receive buffer laid out like the hardware
// ones. Every tick it calls the output adapter's interrupt handler on the
// transmit buffer, optionally copies the transmit buffer into the receive
// buffer, calls the input adapter's handler, and runs the graph when either
// handler asks for a cycle. In circular mode the active half alternates
// every tick, so one block period spans two ticks; in one-shot mode each
// tick moves a whole block.
//
// Run locks its goroutine to an OS thread and, on Linux, can pin that
// thread to a CPU, which keeps the tick close to the timing of a real
// interrupt.
package sim

// SPDX-License-Identifier: EPL-2.0

// Package dma moves samples between the audio graph and a hardware transfer
// buffer.
//
// Output and Input are graph nodes with a second entry point,
// InterruptHandler, which the platform calls from the DMA completion
// interrupt with the transfer buffer. The handlers never allocate, never
// block and only exchange blocks through the pool's atomic operations.
//
// Two buffer disciplines are supported:
//
//   - Circular: the buffer holds one block of frames and the engine loops
//     over it, interrupting at half and full completion. Each interrupt
//     reports the half the engine is now working on; the adapter services
//     the other half. A block therefore takes two interrupts.
//   - OneShot: each transfer covers one block and the adapter services the
//     whole buffer on every interrupt.
//
// Exactly one adapter should hold update responsibility: its handler
// returns true when the graph must run to produce the next block. An
// Arbiter shared by all adapters guarantees that only the first to claim it
// holds it.
//
// InterruptHandler and Update of the same adapter must not run concurrently.
// On hardware the cycle and the interrupt run at priorities that serialize
// them; the sim package runs both on one goroutine.
package dma

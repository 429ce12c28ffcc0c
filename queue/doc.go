// SPDX-License-Identifier: EPL-2.0

// Package queue moves blocks between a user goroutine and the audio cycle.
//
// PlayQueue is a source node: the user produces blocks, the cycle emits one
// per run. RecordQueue is a sink node: the cycle captures one block per run
// while recording, the user reads them back. Both sit on an spsc.Queue, so
// each side must be driven by a single goroutine and neither side waits.
package queue

// slots is the ring size of both queues; one slot stays empty, so each holds
// at most four blocks.
const slots = 5

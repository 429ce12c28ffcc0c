// SPDX-License-Identifier: EPL-2.0

// Package rtaudio is a block-based audio runtime for interrupt-driven
// sample I/O.
//
// Audio moves through the runtime in fixed blocks of 128 signed 16-bit
// samples drawn from a fixed pool. A graph of nodes runs once per block
// period, triggered by the hardware transfer interrupt, and exchanges blocks
// with the transfer buffers through the dma adapters. Nothing on that path
// allocates, blocks or logs.
//
// # Packages
//
//   - block: the pool and the Exclusive/Shared block handles
//   - spsc: the lock-free single-producer single-consumer queue
//   - audio: the Node contract, file Sources, resampling and downmixing
//   - graph: building and running a feed-forward node graph
//   - dma: output and input adapters for circular and one-shot transfers
//   - queue: play and record queues between user code and the graph
//   - nodes: synthesis, gain, mixing and analysis nodes
//   - sim: a host-side interrupt engine for running graphs without hardware
//   - formats/...: WAV, AIFF, MP3 and Ogg Vorbis decoders
//
// This package holds the user-context plumbing that connects files to the
// graph: Feeder decodes, resamples and plays a Source through play queues,
// and Recorder drains record queues into a WAV file.
//
//	pool := block.NewPool()
//	left, right := queue.NewPlay(pool), queue.NewPlay(pool)
//	out, _ := dma.NewOutput(dma.Config{Pool: pool, Responsible: true})
//	g, _ := graph.NewBuilder(pool).
//		Add("left", left).
//		Add("right", right).
//		Add("out", out, graph.From("left", 0), graph.From("right", 0)).
//		Build()
//
//	src, _ := rtaudio.OpenFile(rtaudio.NewRegistry(), "song.mp3")
//	f, _ := rtaudio.NewFeeder(rtaudio.FeederConfig{}, src, left, right)
//	go f.Pump(ctx)
//
// The interrupt side then calls out.InterruptHandler and, when it returns
// true, g.Run.
package rtaudio

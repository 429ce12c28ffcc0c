// SPDX-License-Identifier: EPL-2.0

// Package audio defines the contract every graph node implements and the
// host-side sample sources that feed the runtime.
//
// # Nodes
//
// A Node declares a fixed number of inputs and outputs and processes one
// block per cycle:
//
//	type Node interface {
//	    Inputs() int
//	    Outputs() int
//	    Update(in []block.Shared, out []block.Exclusive)
//	}
//
// Absent handles mean silence on both sides. See Node for the ownership
// rules.
//
// # Sources
//
// Source is a pull stream of interleaved int16 samples. Decoders in the
// formats/ packages produce Sources; Resampler converts them to the codec
// rate and Downmix folds them to mono before they are cut into blocks.
//
//	src, _ := wav.Decoder{}.Decode(f)
//	rs, _ := audio.NewResampler(src, block.SampleRate)
//	mono := audio.NewDownmix(rs)
//
// Sources run in user context and may allocate; nodes must not.
package audio

// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes to floating point; samples are clamped to [-1, 1] and
// scaled to int16 before they leave the Source.
package vorbis

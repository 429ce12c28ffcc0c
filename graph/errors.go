// SPDX-License-Identifier: EPL-2.0

package graph

import "errors"

var (
	ErrEmptyName      = errors.New("node name is empty")
	ErrNilNode        = errors.New("node is nil")
	ErrDuplicateNode  = errors.New("node already declared")
	ErrUnknownNode    = errors.New("input references an undeclared node")
	ErrNotFeedForward = errors.New("input must reference an earlier node")
	ErrTooManyInputs  = errors.New("more inputs connected than the node accepts")
	ErrOutputRange    = errors.New("output index out of range")
	ErrEmptyGraph     = errors.New("graph has no nodes")
)

// SPDX-License-Identifier: EPL-2.0

package queue_test

import (
	"fmt"

	"github.com/ik5/rtaudio/block"
	"github.com/ik5/rtaudio/graph"
	"github.com/ik5/rtaudio/queue"
)

func Example() {
	pool := block.NewPool()
	play := queue.NewPlay(pool)
	rec := queue.NewRecord()

	g, err := graph.NewBuilder(pool).
		Add("play", play).
		Add("rec", rec, graph.From("play", 0)).
		Build()
	if err != nil {
		fmt.Println(err)
		return
	}

	blk := play.Alloc()
	blk.Fill(1234)
	play.Play(blk)

	rec.Start()
	g.Run()
	g.Run()

	got, _ := rec.Read()
	fmt.Println("captured:", got.At(0), "pending:", rec.Available())
	got.Release()
	// Output: captured: 1234 pending: 0
}

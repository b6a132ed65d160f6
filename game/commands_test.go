package game

import (
	"fmt"
	"sync"
	"testing"

	"github.com/pthm-cable/gust/linalg"
)

func TestCommandQueue_DrainOrder(t *testing.T) {
	var q CommandQueue
	q.Push(Command{Kind: CommandAdd, ID: "a", Point: linalg.New(1, 1)})
	q.Push(Command{Kind: CommandMove, ID: "a", Point: linalg.New(2, 2)})
	q.Push(Command{Kind: CommandRemove, ID: "a"})

	if q.Len() != 3 {
		t.Fatalf("expected 3 pending, got %d", q.Len())
	}

	got := q.Drain(nil)
	want := []CommandKind{CommandAdd, CommandMove, CommandRemove}
	for i, k := range want {
		if got[i].Kind != k {
			t.Errorf("command %d: expected %s, got %s", i, k, got[i].Kind)
		}
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue after drain, got %d", q.Len())
	}
	if again := q.Drain(nil); len(again) != 0 {
		t.Errorf("expected nothing on second drain, got %d", len(again))
	}
}

func TestCommandQueue_ConcurrentPush(t *testing.T) {
	var q CommandQueue
	const producers, perProducer = 8, 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			id := fmt.Sprintf("p%d", p)
			for i := 0; i < perProducer; i++ {
				q.Push(Command{Kind: CommandMove, ID: id, Point: linalg.New(float64(i), 0)})
			}
		}(p)
	}
	wg.Wait()

	got := q.Drain(nil)
	if len(got) != producers*perProducer {
		t.Fatalf("expected %d commands, got %d", producers*perProducer, len(got))
	}

	// Each producer's commands keep their relative order.
	last := make(map[string]float64)
	for _, c := range got {
		if prev, ok := last[c.ID]; ok && c.Point.X <= prev {
			t.Fatalf("%s out of order: %v after %v", c.ID, c.Point.X, prev)
		}
		last[c.ID] = c.Point.X
	}
}

func TestCommandKind_String(t *testing.T) {
	tests := map[CommandKind]string{
		CommandAdd:    "add",
		CommandMove:   "move",
		CommandRemove: "remove",
		CommandClear:  "clear",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

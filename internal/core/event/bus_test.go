package event

import (
	"testing"

	"github.com/gridmunch/server/internal/grid"
)

func TestBusDeliversNextSwap(t *testing.T) {
	b := NewBus()
	var got []grid.Cell
	Subscribe(b, func(ev DotEaten) { got = append(got, ev.Cell) })

	Emit(b, DotEaten{Cell: grid.Cell{Col: 1, Row: 1}})
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("event delivered before buffer swap")
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 || got[0] != (grid.Cell{Col: 1, Row: 1}) {
		t.Fatalf("got %v, want one DotEaten at (1,1)", got)
	}
}

func TestBusPublishOrderAcrossTypes(t *testing.T) {
	b := NewBus()
	var order []string
	Subscribe(b, func(PowerPillEaten) { order = append(order, "pill") })
	Subscribe(b, func(ev DotEaten) { order = append(order, "dot") })

	Emit(b, DotEaten{})
	Emit(b, PowerPillEaten{})
	Emit(b, DotEaten{})
	b.SwapBuffers()
	b.DispatchAll()

	want := []string{"dot", "pill", "dot"}
	if len(order) != len(want) {
		t.Fatalf("delivered %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("delivered %v, want publish order %v", order, want)
		}
	}
}

func TestBusNoSubscriberIsDropped(t *testing.T) {
	b := NewBus()
	Emit(b, LevelCleared{Level: 2})
	b.SwapBuffers()
	b.DispatchAll() // must not panic
}

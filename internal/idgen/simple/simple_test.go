package simple

import (
	"context"
	"testing"
	"time"
)

func TestGetIDIsSequential(t *testing.T) {
	g := New()
	g.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }

	for _, want := range []string{"ZC-2026-0001", "ZC-2026-0002", "ZC-2026-0003"} {
		got, err := g.GetID(context.Background())
		if err != nil {
			t.Fatal(err)
		}

		if got != want {
			t.Fatalf("got %s, want %s", got, want)
		}
	}
}

func TestGetIDWrapsAtSpace(t *testing.T) {
	g := New()
	g.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	g.counter = 9999

	got, _ := g.GetID(context.Background())
	if got != "ZC-2026-0000" {
		t.Fatalf("got %s", got)
	}
}

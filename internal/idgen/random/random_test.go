package random

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/avstrong/zenith/internal/idgen"
)

func TestGetIDMatchesPattern(t *testing.T) {
	g := New()
	year := strconv.Itoa(time.Now().Year())

	for range 200 {
		id, err := g.GetID(context.Background())
		if err != nil {
			t.Fatal(err)
		}

		if !idgen.Valid(id) {
			t.Fatalf("id %q does not match ZC-YYYY-NNNN", id)
		}

		if !strings.HasPrefix(id, "ZC-"+year+"-") {
			t.Fatalf("id %q does not carry the current year", id)
		}
	}
}

func TestGetIDZeroPads(t *testing.T) {
	g := &Generator{
		now:  func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) },
		intN: func(int) int { return 7 },
	}

	id, _ := g.GetID(context.Background())
	if id != "ZC-2026-0007" {
		t.Fatalf("got %s", id)
	}
}

package simulate

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRemoteWaits(t *testing.T) {
	start := time.Now()

	if err := Remote(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatal(err)
	}

	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("returned after %v", elapsed)
	}
}

func TestRemoteZeroDelay(t *testing.T) {
	if err := Remote(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
}

func TestRemoteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Remote(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

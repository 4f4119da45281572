package simple

import (
	"context"
	"sync"
	"time"

	"github.com/avstrong/zenith/internal/idgen"
)

// Generator hands out ZC-<year>-0001, ZC-<year>-0002, ... in order.
type Generator struct {
	mu      sync.Mutex
	counter int
	now     func() time.Time
}

func New() *Generator {
	//nolint:exhaustruct
	return &Generator{now: time.Now}
}

func (g *Generator) GetID(_ context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counter++

	return idgen.Format(g.now().Year(), g.counter), nil
}

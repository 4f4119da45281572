package random

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/avstrong/zenith/internal/idgen"
)

// Generator draws the numeric suffix uniformly from [0, 9999].
type Generator struct {
	now  func() time.Time
	intN func(n int) int
}

func New() *Generator {
	return &Generator{now: time.Now, intN: rand.IntN}
}

func (g *Generator) GetID(_ context.Context) (string, error) {
	return idgen.Format(g.now().Year(), g.intN(idgen.Space)), nil
}

package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const orderIDPrefix = "FW"

// counter is the subset of the redis client used for id sequencing.
type counter interface {
	Incr(ctx context.Context, key string) (int64, error)
	CounterKey(name string) string
}

// IDGenerator assigns order ids of the form FW-<yyyymmdd>-<seq>. The
// sequence comes from a shared counter when one is wired; without it (or
// when the counter is unreachable) the suffix falls back to a random token
// so submissions never block on sequencing.
type IDGenerator struct {
	counter counter
	now     func() time.Time
}

// NewIDGenerator builds the generator. The counter may be nil.
func NewIDGenerator(c counter) *IDGenerator {
	return &IDGenerator{counter: c, now: time.Now}
}

// Next issues a fresh order id.
func (g *IDGenerator) Next(ctx context.Context) string {
	day := g.now().UTC().Format("20060102")
	if g.counter != nil {
		if n, err := g.counter.Incr(ctx, g.counter.CounterKey("orders")); err == nil {
			return fmt.Sprintf("%s-%s-%04d", orderIDPrefix, day, n)
		}
	}
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", orderIDPrefix, day, token)
}

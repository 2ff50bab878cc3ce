package roster

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned when a newer request from the same caller replaced an in-flight load.
var ErrSuperseded = errors.New("roster request superseded")

// Guard keeps only the newest roster request per caller alive. Starting a request
// cancels the caller's previous one, and a result that finishes after being
// replaced is dropped instead of returned.
type Guard struct {
	mu       sync.Mutex
	seq      uint64
	inflight map[string]*ticket
}

type ticket struct {
	seq    uint64
	req    Request
	cancel context.CancelFunc
}

func NewGuard() *Guard {
	return &Guard{inflight: make(map[string]*ticket)}
}

// Run executes fn under the caller's slot.
func (g *Guard) Run(ctx context.Context, caller string, req Request, fn func(context.Context) (*Result, error)) (*Result, error) {
	runCtx, t := g.begin(ctx, caller, req)
	defer t.cancel()

	res, err := fn(runCtx)
	if !g.finish(caller, t) {
		return nil, ErrSuperseded
	}
	return res, err
}

// InFlight reports the request currently owning the caller's slot.
func (g *Guard) InFlight(caller string) (Request, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	t, ok := g.inflight[caller]
	if !ok {
		return Request{}, false
	}
	return t.req, true
}

func (g *Guard) begin(ctx context.Context, caller string, req Request) (context.Context, *ticket) {
	runCtx, cancel := context.WithCancel(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	if prev, ok := g.inflight[caller]; ok {
		prev.cancel()
	}
	g.seq++
	t := &ticket{seq: g.seq, req: req, cancel: cancel}
	g.inflight[caller] = t
	return runCtx, t
}

// finish releases the slot and reports whether t still owned it.
func (g *Guard) finish(caller string, t *ticket) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	current, ok := g.inflight[caller]
	if !ok || current.seq != t.seq {
		return false
	}
	delete(g.inflight, caller)
	return true
}

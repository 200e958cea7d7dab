package auth

import (
	"context"
	"sync"
	"time"
)

// Gate tracks the latest session reported by a Gateway and decides whether
// protected views may be shown
type Gate struct {
	mu      sync.RWMutex
	current *Session
	now     func() time.Time
	stop    func()
	done    chan struct{}
}

// NewGate subscribes to gateway and keeps the latest session until ctx ends or Close is called
func NewGate(ctx context.Context, gateway Gateway) *Gate {
	sessions, stop := gateway.ObserveSession(ctx)
	g := &Gate{
		now:  time.Now,
		stop: stop,
		done: make(chan struct{}),
	}
	// The first value is delivered synchronously so callers can gate immediately.
	select {
	case s, ok := <-sessions:
		if ok {
			g.current = s
		}
	case <-ctx.Done():
	}
	go g.follow(sessions)
	return g
}

func (g *Gate) follow(sessions <-chan *Session) {
	defer close(g.done)
	for s := range sessions {
		g.mu.Lock()
		g.current = s
		g.mu.Unlock()
	}
}

// Current returns the latest session, nil when signed out or expired
func (g *Gate) Current() *Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.current == nil || g.current.Expired(g.now()) {
		return nil
	}
	return g.current
}

// Allowed reports whether a protected view may be entered
func (g *Gate) Allowed() bool {
	return g.Current() != nil
}

// Close stops following the gateway
func (g *Gate) Close() {
	g.stop()
	<-g.done
}

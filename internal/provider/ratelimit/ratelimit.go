package ratelimit

import (
    "context"
    "fmt"
    "sync"
    "time"

    "golang.org/x/time/rate"

    "cryptofeed/internal/metrics"
    "cryptofeed/internal/provider"
)

// DefaultPerMinute is used for providers missing from the limit table.
const DefaultPerMinute = 10

// Limiter paces calls per provider. Two granted acquisitions for the same
// provider are never closer than 60s / requests-per-minute, whatever the
// number of concurrent callers. One Limiter is shared by every adapter in
// the process.
type Limiter struct {
    mu       sync.Mutex
    perMin   map[provider.ID]int
    def      int
    limiters map[provider.ID]*rate.Limiter
    last     map[provider.ID]time.Time
    onGrant  func(id provider.ID, granted time.Time)
}

func New(perMinute map[provider.ID]int, def int) *Limiter {
    if def <= 0 { def = DefaultPerMinute }
    l := &Limiter{
        perMin:   make(map[provider.ID]int, len(perMinute)),
        def:      def,
        limiters: make(map[provider.ID]*rate.Limiter),
        last:     make(map[provider.ID]time.Time),
    }
    for id, n := range perMinute {
        if n > 0 { l.perMin[id] = n }
    }
    return l
}

// Interval is the minimum spacing between grants for id.
func (l *Limiter) Interval(id provider.ID) time.Duration {
    l.mu.Lock()
    defer l.mu.Unlock()
    return interval(l.rpm(id))
}

// SetLimit changes the rate for id, e.g. when a key unlocks a higher tier.
func (l *Limiter) SetLimit(id provider.ID, perMinute int) {
    if perMinute <= 0 { return }
    l.mu.Lock()
    defer l.mu.Unlock()
    l.perMin[id] = perMinute
    if lim, ok := l.limiters[id]; ok { lim.SetLimit(rate.Every(interval(perMinute))) }
}

// OnGrant registers fn to be called after every granted acquisition with
// the slot time the grant was scheduled for.
func (l *Limiter) OnGrant(fn func(id provider.ID, granted time.Time)) {
    l.mu.Lock()
    defer l.mu.Unlock()
    l.onGrant = fn
}

// Acquire blocks until id may be called again and records the grant.
// It returns early only when ctx is done.
func (l *Limiter) Acquire(ctx context.Context, id provider.ID) error {
    if err := ctx.Err(); err != nil { return err }
    lim := l.getLimiter(id)
    now := time.Now()
    r := lim.ReserveN(now, 1)
    if !r.OK() { return fmt.Errorf("rate limit for %s cannot grant a slot", id) }
    delay := r.DelayFrom(now)
    if delay > 0 {
        t := time.NewTimer(delay)
        defer t.Stop()
        select {
        case <-ctx.Done():
            r.Cancel()
            return ctx.Err()
        case <-t.C:
        }
    }
    granted := now.Add(delay)
    metrics.ObserveWait(string(id), delay)

    l.mu.Lock()
    if granted.After(l.last[id]) { l.last[id] = granted }
    fn := l.onGrant
    l.mu.Unlock()
    if fn != nil { fn(id, granted) }
    return nil
}

// Last returns the time of the most recent grant for id.
func (l *Limiter) Last(id provider.ID) time.Time {
    l.mu.Lock()
    defer l.mu.Unlock()
    return l.last[id]
}

func (l *Limiter) getLimiter(id provider.ID) *rate.Limiter {
    l.mu.Lock()
    defer l.mu.Unlock()

    lim, ok := l.limiters[id]
    if !ok {
        // burst 1: a token is only ever available one interval after the previous one.
        lim = rate.NewLimiter(rate.Every(interval(l.rpm(id))), 1)
        l.limiters[id] = lim
    }
    return lim
}

func (l *Limiter) rpm(id provider.ID) int {
    if n, ok := l.perMin[id]; ok { return n }
    return l.def
}

func interval(perMinute int) time.Duration {
    return time.Minute / time.Duration(perMinute)
}

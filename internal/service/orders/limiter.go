package orders

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// UserLimiter keeps one token bucket per user. A bucket idle long enough to
// refill completely is dropped, since a new bucket starts full anyway.
type UserLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	buckets   map[int64]*bucket
	now       func() time.Time
}

type bucket struct {
	limiter *rate.Limiter
	seen    time.Time
}

// NewUserLimiter allows perMinute events per user with the given burst.
// A non-positive perMinute returns nil, which allows everything.
func NewUserLimiter(perMinute, burst int) *UserLimiter {
	if perMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &UserLimiter{
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   burst,
		idle:    time.Duration(float64(burst) / float64(perMinute) * float64(time.Minute)),
		buckets: make(map[int64]*bucket),
		now:     time.Now,
	}
}

func (l *UserLimiter) Allow(userID int64) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	b, ok := l.buckets[userID]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[userID] = b
	}
	b.seen = now
	return b.limiter.AllowN(now, 1)
}

func (l *UserLimiter) sweep(now time.Time) {
	for id, b := range l.buckets {
		if now.Sub(b.seen) >= l.idle {
			delete(l.buckets, id)
		}
	}
	l.lastSweep = now
}

func (l *UserLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

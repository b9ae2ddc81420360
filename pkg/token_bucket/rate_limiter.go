package token_bucket

import (
	"sync"
	"time"
)

// TokenBucket пополняется со скоростью refillRate токенов в секунду до capacity.
type TokenBucket struct {
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
	mu         sync.Mutex
}

func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return &TokenBucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

func (t *TokenBucket) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.allow(time.Now())
}

func (t *TokenBucket) allow(now time.Time) bool {
	t.refill(now)

	if t.tokens >= 1 {
		t.tokens--
		return true
	}
	return false
}

func (t *TokenBucket) refill(now time.Time) {
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	t.tokens += elapsed * t.refillRate
	if t.tokens > t.capacity {
		t.tokens = t.capacity
	}
	t.lastRefill = now
}

func (t *TokenBucket) full(now time.Time) bool {
	t.refill(now)
	return t.tokens >= t.capacity
}

// Keyed держит отдельный bucket на каждого клиента (пользователь или адрес).
// Полностью восстановившиеся bucket'ы удаляются при очередной уборке.
type Keyed struct {
	capacity   int
	refillRate float64
	sweepEvery time.Duration

	mu        sync.Mutex
	buckets   map[string]*TokenBucket
	lastSweep time.Time
}

func NewKeyed(capacity int, refillRate float64, sweepEvery time.Duration) *Keyed {
	return &Keyed{
		capacity:   capacity,
		refillRate: refillRate,
		sweepEvery: sweepEvery,
		buckets:    make(map[string]*TokenBucket),
		lastSweep:  time.Now(),
	}
}

func (k *Keyed) AllowKey(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := time.Now()
	if k.sweepEvery > 0 && now.Sub(k.lastSweep) >= k.sweepEvery {
		k.sweep(now)
	}

	bucket, ok := k.buckets[key]
	if !ok {
		bucket = NewTokenBucket(k.capacity, k.refillRate)
		k.buckets[key] = bucket
	}
	return bucket.allow(now)
}

func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

func (k *Keyed) sweep(now time.Time) {
	for key, bucket := range k.buckets {
		if bucket.full(now) {
			delete(k.buckets, key)
		}
	}
	k.lastSweep = now
}

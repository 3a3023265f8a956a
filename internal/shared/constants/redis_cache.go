package constants

// Redis key prefixes for the presentation-boundary read cache. The
// reservation write path never touches these; stale reads expire on
// their own short TTLs.
const (
	CacheKeyEventList    = "reserva:cache:events:list"
	CacheKeyAvailability = "reserva:cache:events:availability"
)

// Redis key prefix for the rate limiter counters
const RateLimitKeyPrefix = "reserva:ratelimit"

package config

import "time"

// RateLimitConfig holds tunables for the Redis token-bucket limiter.
// Capacity is the bucket size, RefillTokens/RefillInterval the refill
// rate, TTL how long idle buckets live in Redis, and KeyStrategy which
// request attributes form the bucket key (ip, user, route or
// combinations joined with underscores).
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
}

// LoadRateLimitConfig reads limiter settings from the environment with
// defaults suitable for a small public API: 60 requests burst, one
// token back per second, keyed by client IP, user and route.
func LoadRateLimitConfig() RateLimitConfig {
    return RateLimitConfig{
        Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
        Capacity:       atoiOr("RATE_LIMIT_CAPACITY", 60),
        RefillTokens:   atoiOr("RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: parseDurOr("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            parseDurOr("RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:    getenv("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
        Prefix:         getenv("RATE_LIMIT_PREFIX", "rl"),
    }
}

func atoiOr(key string, def int) int {
    if n := atoi(getenv(key, "")); n > 0 {
        return n
    }
    return def
}

func parseDurOr(key string, def time.Duration) time.Duration {
    if s := getenv(key, ""); s != "" {
        if d, err := time.ParseDuration(s); err == nil {
            return d
        }
    }
    return def
}

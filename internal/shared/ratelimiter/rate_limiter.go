package ratelimiter

import (
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	// Allow は今この瞬間に1回分の呼び出しが許可されるかを返します。待機はしません。
	Allow() bool
}

// RateLimiterは、interval あたり limit 回まで操作を許可するトークンバケットです。
type RateLimiter struct {
	limiter *rate.Limiter
}

var _ RateLimiterInterface = (*RateLimiter)(nil)

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
// limit が0以下の場合は制限なしになります。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	every := rate.Every(interval / time.Duration(limit))
	return &RateLimiter{limiter: rate.NewLimiter(every, limit)}
}

// Allow は1回分のトークンを消費できればtrueを返します。
func (rl *RateLimiter) Allow() bool {
	return rl.limiter.Allow()
}

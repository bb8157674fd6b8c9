// Package quota は外部ビジョンモデルの呼び出し回数を分単位・日単位で制限するデコレーターを提供します。
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"treasure_backend/internal/feature/validation/domain"
	"treasure_backend/internal/feature/validation/domain/entity"
	"treasure_backend/internal/feature/validation/usecase"
	"treasure_backend/internal/shared/ratelimiter"
)

// UsageStore は日ごとの呼び出し回数を記録します。
type UsageStore interface {
	// Increment は day のカウンターを1増やし、増加後の値を返します。
	Increment(ctx context.Context, day string, ttl time.Duration) (int64, error)
}

// QuotaDescriber はDescriberを呼び出し上限付きでラップします。
type QuotaDescriber struct {
	inner   usecase.Describer
	limiter ratelimiter.RateLimiterInterface
	store   UsageStore
	perDay  int64
	loc     *time.Location
	now     func() time.Time
}

var _ usecase.Describer = (*QuotaDescriber)(nil)

// NewQuotaDescriber はQuotaDescriberの新しいインスタンスを生成します。
// limiter がnilなら分単位の制限なし、store がnilまたは perDay が0以下なら日単位の制限なしです。
func NewQuotaDescriber(inner usecase.Describer, limiter ratelimiter.RateLimiterInterface, store UsageStore, perDay int, loc *time.Location) *QuotaDescriber {
	if loc == nil {
		loc = time.UTC
	}
	return &QuotaDescriber{
		inner:   inner,
		limiter: limiter,
		store:   store,
		perDay:  int64(perDay),
		loc:     loc,
		now:     time.Now,
	}
}

// Tag は内部Describerの識別子を返します。
func (q *QuotaDescriber) Tag() string { return q.inner.Tag() }

// Describe は上限内であれば内部Describerを呼び出します。
// 上限を超えた場合は domain.ErrQuotaExceeded を返します。
// 日次カウントは呼び出し前に加算され、内部Describerの失敗やタイムアウトでも戻しません。
func (q *QuotaDescriber) Describe(ctx context.Context, req usecase.DescribeRequest) (*entity.VisionDescription, error) {
	if q.limiter != nil && !q.limiter.Allow() {
		return nil, fmt.Errorf("%w: per-minute limit reached", domain.ErrQuotaExceeded)
	}

	if q.store != nil && q.perDay > 0 {
		now := q.now()
		day := DayKey(now, q.loc)
		n, err := q.store.Increment(ctx, day, TimeUntilNextDay(now, q.loc))
		switch {
		case err != nil:
			// 台帳が使えない場合は制限せずに続行する
			logrus.WithError(err).WithField("day", day).Warn("usage ledger unavailable")
		case n > q.perDay:
			return nil, fmt.Errorf("%w: daily limit of %d requests reached", domain.ErrQuotaExceeded, q.perDay)
		}
	}

	return q.inner.Describe(ctx, req)
}

package retry

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultMaxAttempts = 3
	DefaultDelay       = 3 * time.Second
)

// Policy 重试策略：固定次数，固定间隔
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultPolicy 返回默认策略（3 次，间隔 3 秒）
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultDelay}
}

// Func 单次尝试。返回 error（包括"未找到"）即视为本次失败。
type Func[T any] func(ctx context.Context, attempt int) (T, error)

// Do 按策略执行 op，成功立即返回 (value, true)；
// 次数用尽或 ctx 被取消时返回 (零值, false)。失败原因只记录日志，不向上传递。
func Do[T any](ctx context.Context, p Policy, label string, op Func[T]) (T, bool) {
	var zero T
	logger := zerolog.Ctx(ctx)

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		logger.Debug().
			Str("op", label).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Msg("Attempting")

		value, err := op(ctx, attempt)
		if err == nil {
			return value, true
		}

		logger.Warn().
			Err(err).
			Str("op", label).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Msg("Attempt failed")

		if attempt == attempts {
			break
		}

		if err := sleep(ctx, p.Delay); err != nil {
			logger.Warn().Err(err).Str("op", label).Msg("Retry aborted")
			return zero, false
		}
	}

	logger.Warn().Str("op", label).Int("attempts", attempts).Msg("All attempts exhausted")
	return zero, false
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package middleware

import (
	"sync"
	"time"

	"github.com/futig/rag-assistant/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	warningInterval   = 30 * time.Second
	inactiveThreshold = time.Hour
)

// userLimit tracks rate limit state for a single user
type userLimit struct {
	limiter       *rate.Limiter
	lastSeen      time.Time
	warningsSent  int
	lastWarningAt time.Time
}

// RateLimiterMiddleware drops updates from users that exceed their token bucket
type RateLimiterMiddleware struct {
	mu     sync.Mutex
	limits map[int64]*userLimit
	every  rate.Limit
	burst  int
	now    func() time.Time
	logger *zap.Logger
	bot    Sender
}

func NewRateLimiterMiddleware(requestsPerMinute, burst int, logger *zap.Logger, bot Sender) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		limits: make(map[int64]*userLimit),
		every:  rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:  burst,
		now:    time.Now,
		logger: logger,
		bot:    bot,
	}
}

func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID, ok := updateIDs(update)
	if !ok {
		next(update)
		return
	}

	if !rl.allow(userID, chatID) {
		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	next(update)
}

func (rl *RateLimiterMiddleware) allow(userID, chatID int64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	limit, exists := rl.limits[userID]
	if !exists {
		limit = &userLimit{limiter: rate.NewLimiter(rl.every, rl.burst)}
		rl.limits[userID] = limit
	}
	limit.lastSeen = now

	if limit.limiter.AllowN(now, 1) {
		limit.warningsSent = 0
		return true
	}

	// warn at most once per interval so the limiter itself does not flood the chat
	if now.Sub(limit.lastWarningAt) > warningInterval {
		limit.warningsSent++
		limit.lastWarningAt = now
		rl.sendWarning(chatID, limit.warningsSent)
	}

	return false
}

func (rl *RateLimiterMiddleware) sendWarning(chatID int64, count int) {
	if _, err := rl.bot.Send(tgbotapi.NewMessage(chatID, render.RateLimitWarning(count))); err != nil {
		rl.logger.Error("failed to send rate limit warning",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// Cleanup forgets users idle for more than an hour.
func (rl *RateLimiterMiddleware) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for userID, limit := range rl.limits {
		if now.Sub(limit.lastSeen) > inactiveThreshold {
			delete(rl.limits, userID)
			rl.logger.Debug("cleaned up inactive user from rate limiter", zap.Int64("user_id", userID))
		}
	}
}

package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"scorebox/internal/services/scoring/domain"
)

// cacheTTL is how long a computed score stays cached
const cacheTTL = 3600 * time.Second

// adminScore is the fixed sentinel returned to the admin login, bypassing
// cache and computation
const adminScore = 42

// onlineScore validates the arguments, records the present fields in the
// telemetry "has" key and returns {"score": n}
func (s *Service) onlineScore(ctx context.Context, env *domain.Envelope, tel domain.Telemetry) (any, int, error) {
	args, errs := domain.ParseScoreArgs(env.Arguments, s.now())
	if errs != nil {
		return errs, http.StatusUnprocessableEntity, nil
	}

	tel["has"] = args.Has

	var score float64
	if env.IsAdmin() {
		score = adminScore
	} else {
		score = s.getScore(ctx, args)
	}

	return map[string]any{"score": score}, http.StatusOK, nil
}

// getScore consults the cache first and falls back to the weighted presence
// computation. Cache failures in either direction never surface: a failed
// read is a miss, a failed write loses nothing but the next call's shortcut
func (s *Service) getScore(ctx context.Context, a *domain.ScoreArgs) float64 {
	key := scoreKey(a)

	if s.kv != nil {
		if raw, ok := s.kv.CacheGet(ctx, key); ok {
			if cached, err := strconv.ParseFloat(raw, 64); err == nil {
				s.log.Info().Str("key", key).Msg("score served from cache")
				return cached
			}
		}
	}

	var score float64
	if a.Phone != "" {
		score += 1.5
	}
	if a.Email != "" {
		score += 1.5
	}
	if a.HasBirthday && a.HasGender {
		score += 1.5
	}
	if a.FirstName != "" && a.LastName != "" {
		score += 0.5
	}

	if s.kv != nil {
		s.kv.CacheSet(ctx, key, strconv.FormatFloat(score, 'f', -1, 64), cacheTTL)
	}

	return score
}

// scoreKey derives the cache key from the identity fields; missing
// components contribute the empty string
func scoreKey(a *domain.ScoreArgs) string {
	birthday := ""
	if a.HasBirthday {
		birthday = a.Birthday.Format("20060102")
	}
	sum := md5.Sum([]byte(a.FirstName + a.LastName + a.Phone + birthday))
	return "uid:" + hex.EncodeToString(sum[:])
}

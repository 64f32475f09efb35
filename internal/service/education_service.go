package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/aquaed/aquaed-backend/internal/config"
	"github.com/aquaed/aquaed-backend/internal/llm"
)

// ErrUnknownFAQ is returned when the requested question is not one of the
// fixed FAQ entries.
var ErrUnknownFAQ = errors.New("not a known FAQ question")

// FAQQuestions is the fixed set of water-quality FAQ entries offered to
// visitors. Answers are generated on demand and cached.
var FAQQuestions = []string{
	"What is pH in water?",
	"How can I measure water quality at home?",
	"Why is chlorine added to water?",
	"What are nitrates and why are they bad?",
	"How is my water cleaned?",
	"What are safe levels of lead in water?",
	"Where are the water treatment plants near me?",
}

// EducationService produces the AI-generated educational content: localized
// fun facts and FAQ answers, both cached in Redis to keep repeat requests
// off the generation API.
type EducationService struct {
	completer llm.Completer
	rdb       *redis.Client
	log       zerolog.Logger
	cacheTTL  time.Duration
}

// NewEducationService creates a new EducationService.
func NewEducationService(completer llm.Completer, rdb *redis.Client, log zerolog.Logger, cfg *config.Config) *EducationService {
	return &EducationService{
		completer: completer,
		rdb:       rdb,
		log:       log.With().Str("component", "education_service").Logger(),
		cacheTTL:  cfg.ContentCacheTTL,
	}
}

// FunFact returns one localized water-quality fun fact for a city.
// The cached flag reports whether the fact was served from Redis.
func (s *EducationService) FunFact(ctx context.Context, city, language string) (fact string, cached bool, err error) {
	key := config.CacheKey.FunFactKey(slugify(city), language)
	if text, ok := s.cacheGet(ctx, key); ok {
		return text, true, nil
	}

	system, user := llm.FunFactPrompt(city, language)
	text, err := s.completer.Complete(ctx, system, user)
	if err != nil {
		return "", false, fmt.Errorf("generate fun fact: %w", err)
	}

	s.cacheSet(ctx, key, text)
	return text, false, nil
}

// FAQAnswer answers one of the fixed FAQ questions in the given language.
func (s *EducationService) FAQAnswer(ctx context.Context, question, language string) (answer string, cached bool, err error) {
	if !isKnownFAQ(question) {
		return "", false, ErrUnknownFAQ
	}

	key := config.CacheKey.FAQAnswerKey(slugify(question), language)
	if text, ok := s.cacheGet(ctx, key); ok {
		return text, true, nil
	}

	system, user := llm.FAQPrompt(question, language)
	text, err := s.completer.Complete(ctx, system, user)
	if err != nil {
		return "", false, fmt.Errorf("generate FAQ answer: %w", err)
	}

	s.cacheSet(ctx, key, text)
	return text, false, nil
}

func isKnownFAQ(question string) bool {
	for _, q := range FAQQuestions {
		if q == question {
			return true
		}
	}
	return false
}

func (s *EducationService) cacheGet(ctx context.Context, key string) (string, bool) {
	if s.rdb == nil {
		return "", false
	}
	text, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("key", key).Msg("Content cache read failed")
		}
		return "", false
	}
	return text, text != ""
}

func (s *EducationService) cacheSet(ctx context.Context, key, text string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, key, text, s.cacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Content cache write failed")
	}
}

// slugify normalizes free-form text into a stable cache key fragment.
func slugify(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, slug)
	return strings.Trim(slug, "-")
}

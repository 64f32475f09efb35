package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

// CacheKey centralizes every Redis key format used by the application.
var CacheKey = &CacheKeyStruct{}

// QuestionBankKey returns the cache key for the validated question bank payload.
func (r *CacheKeyStruct) QuestionBankKey() string {
	return "quiz:bank"
}

// FunFactKey returns the cache key for a generated fun fact.
func (r *CacheKeyStruct) FunFactKey(city, language string) string {
	return fmt.Sprintf("content:fact:%s:%s", language, city)
}

// FAQAnswerKey returns the cache key for a generated FAQ answer.
func (r *CacheKeyStruct) FAQAnswerKey(questionSlug, language string) string {
	return fmt.Sprintf("content:faq:%s:%s", language, questionSlug)
}

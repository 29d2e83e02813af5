// Package extraction - Driver extractor
package extraction

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"compliance-cost/core/cache"
	"compliance-cost/core/types"
	"compliance-cost/internal/logging"
)

// cacheSuffix namespaces extraction entries within the shared cache
const cacheSuffix = "drivers"

// defaultRetryAttempts caps model retries when none is configured
const defaultRetryAttempts = 3

// Extractor extracts cost drivers from regulation text. The keyword
// rule engine always works; the model path only runs when a client is
// attached and silently degrades on any failure.
type Extractor struct {
	rules   []Rule
	cache   cache.Cache
	model   ModelClient
	retries int
	backoff time.Duration
	log     *zap.Logger

	// sleep is swappable so tests do not wait out real backoff
	sleep func(time.Duration)
}

// New creates a deterministic-only extractor with the builtin rules
func New(c cache.Cache) *Extractor {
	if c == nil {
		c = cache.Nop{}
	}
	return &Extractor{
		rules:   BuiltinRules(),
		cache:   c,
		retries: defaultRetryAttempts,
		backoff: time.Second,
		log:     logging.Named("extraction"),
		sleep:   time.Sleep,
	}
}

// NewWithModel creates an extractor with the generative-model path
// enabled. retryAttempts <= 0 uses the default cap.
func NewWithModel(c cache.Cache, model ModelClient, retryAttempts int) *Extractor {
	e := New(c)
	e.model = model
	if retryAttempts > 0 {
		e.retries = retryAttempts
	}
	return e
}

// SetRules replaces the rule table (e.g. after merging an HCL file)
func (e *Extractor) SetRules(rules []Rule) {
	e.rules = rules
}

// Rules returns the effective rule table
func (e *Extractor) Rules() []Rule {
	return e.rules
}

// CacheKey fingerprints regulation text for memoization. This is a
// cheap fingerprint, not a cryptographic hash: near-duplicate inputs of
// identical length can collide, which is accepted.
func CacheKey(text string) string {
	prefix := text
	if len(prefix) > 100 {
		prefix = prefix[:100]
	}
	return fmt.Sprintf("%s:%d:%s", prefix, len(text), cacheSuffix)
}

// Extract turns regulation text into a driver list. Identical text
// always yields an equal driver list; the model path never surfaces an
// error to the caller.
func (e *Extractor) Extract(ctx context.Context, text, title string) []types.CostDriver {
	key := CacheKey(text)
	if cached, ok := e.cache.Get(key); ok {
		if drivers, ok := cached.([]types.CostDriver); ok {
			e.log.Debug("extraction cache hit", zap.String("title", title))
			return copyDrivers(drivers)
		}
	}

	var drivers []types.CostDriver
	if e.model != nil {
		extracted, err := e.extractWithModel(ctx, text, title)
		if err != nil {
			e.log.Warn("model extraction failed, using rule engine",
				zap.String("title", title),
				zap.Error(err))
		} else {
			drivers = extracted
		}
	}
	if drivers == nil {
		drivers = EvaluateRules(e.rules, text)
	}

	e.cache.Set(key, drivers)
	return copyDrivers(drivers)
}

// ClearCache drops all memoized extractions
func (e *Extractor) ClearCache() {
	e.cache.Clear()
}

// extractWithModel runs the bounded-retry model path. Transport errors
// are retried with exponential backoff; malformed output fails at once
// so the caller can fall back without burning retries.
func (e *Extractor) extractWithModel(ctx context.Context, text, title string) ([]types.CostDriver, error) {
	prompt := buildExtractionPrompt(text, title)

	var lastErr error
	delay := e.backoff
	for attempt := 1; attempt <= e.retries; attempt++ {
		raw, err := e.model.Complete(ctx, extractionSystemPrompt, prompt)
		if err == nil {
			return parseDriversResponse(raw)
		}

		lastErr = err
		e.log.Warn("model request failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", e.retries),
			zap.Error(err))

		if attempt < e.retries {
			e.sleep(delay)
			delay *= 2
		}
	}

	return nil, lastErr
}

// MethodFor reports whether a driver list came from the model path
func MethodFor(drivers []types.CostDriver) types.EstimationMethod {
	for _, d := range drivers {
		for _, ev := range d.Evidence {
			if ev.Type == "model_extraction" {
				return types.MethodAICalibrated
			}
		}
	}
	return types.MethodDeterministic
}

// copyDrivers returns a fresh slice so callers cannot mutate the cached
// entry through the returned value
func copyDrivers(drivers []types.CostDriver) []types.CostDriver {
	out := make([]types.CostDriver, len(drivers))
	copy(out, drivers)
	return out
}

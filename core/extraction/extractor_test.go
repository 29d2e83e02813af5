package extraction

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"compliance-cost/core/cache"
	"compliance-cost/core/types"
)

const gdprStyleText = `Organizations must establish a reporting portal for data subjects.
A data protection officer shall be appointed. Periodic audit of processing
activities is required. Staff training must be provided. Legal policy review
of processing agreements is expected.`

// TestDeterministicExtraction tests the keyword rule engine behavior
func TestDeterministicExtraction(t *testing.T) {
	extractor := New(cache.NewMemory())
	drivers := extractor.Extract(context.Background(), gdprStyleText, "GDPR")

	if len(drivers) != 5 {
		t.Fatalf("expected 5 drivers, got %d", len(drivers))
	}

	expected := []struct {
		id       string
		category types.DriverCategory
		cost     float64
		dept     types.Department
	}{
		{"driver-det-1", types.CategorySystemChanges, 30000, types.DepartmentIT},
		{"driver-det-2", types.CategoryPersonnel, 60000, types.DepartmentCompliance},
		{"driver-det-3", types.CategoryAudit, 12000, types.DepartmentCompliance},
		{"driver-det-4", types.CategoryTraining, 8000, types.DepartmentHR},
		{"driver-det-5", types.CategoryLegalReview, 5000, types.DepartmentLegal},
	}

	for i, want := range expected {
		got := drivers[i]
		if got.ID != want.id {
			t.Errorf("driver %d: expected ID %s, got %s", i, want.id, got.ID)
		}
		if got.Category != want.category {
			t.Errorf("driver %d: expected category %s, got %s", i, want.category, got.Category)
		}
		if got.EstimatedCost != want.cost {
			t.Errorf("driver %d: expected cost %.0f, got %.0f", i, want.cost, got.EstimatedCost)
		}
		if got.Department != want.dept {
			t.Errorf("driver %d: expected department %s, got %s", i, want.dept, got.Department)
		}
		if len(got.Evidence) != 1 || got.Evidence[0].Type != "keyword_match" {
			t.Errorf("driver %d: expected keyword_match evidence", i)
		}
	}
}

// TestExtractionEdgeCases tests degenerate inputs
func TestExtractionEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"empty text", "", 0},
		{"whitespace only", "   \n\t  ", 0},
		{"no keyword matches", "completely unrelated prose about gardening", 0},
		{"single match", "an annual fee applies", 1},
		{"case insensitive", "A PORTAL MUST BE ESTABLISHED", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := New(cache.NewMemory())
			drivers := extractor.Extract(context.Background(), tt.text, "test")
			if len(drivers) != tt.expected {
				t.Errorf("expected %d drivers, got %d", tt.expected, len(drivers))
			}
		})
	}
}

// countingModel is a ModelClient that records calls
type countingModel struct {
	calls    int
	response string
	err      error
}

func (m *countingModel) Complete(_ context.Context, _, _ string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

const validModelResponse = `{"drivers": [
	{"category": "SYSTEM_CHANGES", "description": "Build intake portal", "is_one_time": true,
	 "estimated_cost": 45000, "confidence": 0.9, "department": "IT"},
	{"category": "TRAINING", "description": "Annual awareness training", "is_one_time": false,
	 "estimated_cost": 9000, "confidence": 0.7, "department": "HR"}
]}`

// TestCacheHitSkipsModel verifies that byte-identical text never calls
// the model twice and returns an equal driver list
func TestCacheHitSkipsModel(t *testing.T) {
	model := &countingModel{response: validModelResponse}
	extractor := NewWithModel(cache.NewMemory(), model, 3)

	first := extractor.Extract(context.Background(), gdprStyleText, "GDPR")
	second := extractor.Extract(context.Background(), gdprStyleText, "GDPR")

	if model.calls != 1 {
		t.Fatalf("expected exactly 1 model call, got %d", model.calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated extraction returned different driver lists")
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 model drivers, got %d", len(first))
	}
	if MethodFor(first) != types.MethodAICalibrated {
		t.Errorf("expected AI_CALIBRATED method, got %s", MethodFor(first))
	}
}

// TestModelFallback verifies every model failure degrades to rules
func TestModelFallback(t *testing.T) {
	tests := []struct {
		name  string
		model *countingModel
	}{
		{"transport error", &countingModel{err: errors.New("connection refused")}},
		{"malformed json", &countingModel{response: "this is not json"}},
		{"empty driver list", &countingModel{response: `{"drivers": []}`}},
		{"invalid category", &countingModel{response: `{"drivers": [{"category": "NONSENSE", "department": "IT", "estimated_cost": 1}]}`}},
		{"negative cost", &countingModel{response: `{"drivers": [{"category": "AUDIT", "department": "IT", "estimated_cost": -5}]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := NewWithModel(cache.NewMemory(), tt.model, 3)
			extractor.sleep = func(time.Duration) {}

			drivers := extractor.Extract(context.Background(), gdprStyleText, "GDPR")
			if len(drivers) != 5 {
				t.Fatalf("expected 5 deterministic drivers after fallback, got %d", len(drivers))
			}
			if MethodFor(drivers) != types.MethodDeterministic {
				t.Errorf("fallback result should be DETERMINISTIC, got %s", MethodFor(drivers))
			}
		})
	}
}

// TestModelRetryBackoff verifies transport errors are retried with
// exponential backoff up to the attempt cap
func TestModelRetryBackoff(t *testing.T) {
	model := &countingModel{err: errors.New("timeout")}
	extractor := NewWithModel(cache.NewMemory(), model, 3)

	var delays []time.Duration
	extractor.sleep = func(d time.Duration) { delays = append(delays, d) }

	extractor.Extract(context.Background(), "portal setup required", "test")

	if model.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", model.calls)
	}
	want := []time.Duration{time.Second, 2 * time.Second}
	if !reflect.DeepEqual(delays, want) {
		t.Errorf("expected backoff %v, got %v", want, delays)
	}
}

// TestMalformedOutputDoesNotRetry verifies schema failures fall back
// immediately instead of burning retries
func TestMalformedOutputDoesNotRetry(t *testing.T) {
	model := &countingModel{response: "```json\nnot json\n```"}
	extractor := NewWithModel(cache.NewMemory(), model, 3)
	extractor.sleep = func(time.Duration) {}

	extractor.Extract(context.Background(), "portal setup required", "test")

	if model.calls != 1 {
		t.Errorf("expected 1 attempt for malformed output, got %d", model.calls)
	}
}

// TestFenceStripping verifies Markdown code-fence wrapped responses
// still parse
func TestFenceStripping(t *testing.T) {
	model := &countingModel{response: "```json\n" + validModelResponse + "\n```"}
	extractor := NewWithModel(cache.NewMemory(), model, 3)

	drivers := extractor.Extract(context.Background(), gdprStyleText, "GDPR")
	if len(drivers) != 2 {
		t.Fatalf("expected 2 drivers from fenced response, got %d", len(drivers))
	}
	if drivers[0].ID != "driver-ai-1" {
		t.Errorf("expected driver-ai-1, got %s", drivers[0].ID)
	}
}

// TestCacheKey pins the fingerprint format
func TestCacheKey(t *testing.T) {
	short := CacheKey("abc")
	if short != "abc:3:drivers" {
		t.Errorf("unexpected short key %q", short)
	}

	long := make([]byte, 250)
	for i := range long {
		long[i] = 'x'
	}
	key := CacheKey(string(long))
	want := string(long[:100]) + ":250:drivers"
	if key != want {
		t.Errorf("unexpected long key %q", key)
	}
}

// TestClearCache verifies explicit cache reset forces re-extraction
func TestClearCache(t *testing.T) {
	model := &countingModel{response: validModelResponse}
	extractor := NewWithModel(cache.NewMemory(), model, 3)

	extractor.Extract(context.Background(), gdprStyleText, "GDPR")
	extractor.ClearCache()
	extractor.Extract(context.Background(), gdprStyleText, "GDPR")

	if model.calls != 2 {
		t.Errorf("expected 2 model calls after cache clear, got %d", model.calls)
	}
}

package health

import (
	"context"
	"errors"
	"testing"

	"github.com/kloudstax/giftrec/internal/domain"
)

// --- Mocks ---

type mockVocab struct {
	counts map[domain.Category]int
}

func (m *mockVocab) Len(cat domain.Category) int { return m.counts[cat] }

func loadedVocab() *mockVocab {
	return &mockVocab{counts: map[domain.Category]int{
		domain.CategoryAttribute:    10,
		domain.CategoryOccasion:     5,
		domain.CategoryRelationship: 7,
	}}
}

type mockModelChecker struct {
	err error
}

func (m *mockModelChecker) HealthCheck(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(loadedVocab(), &mockModelChecker{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("status = %q, want %q", r.Status, Healthy)
	}
	if r.Checks["vocabulary"] != CheckOK {
		t.Errorf("vocabulary = %q, want %q", r.Checks["vocabulary"], CheckOK)
	}
	if r.Checks["model"] != CheckOK {
		t.Errorf("model = %q, want %q", r.Checks["model"], CheckOK)
	}
}

func TestCheck_EmptyVocabularyCategory(t *testing.T) {
	vocab := loadedVocab()
	vocab.counts[domain.CategoryOccasion] = 0

	svc := New(vocab, nil)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("status = %q, want %q", r.Status, Degraded)
	}
	if r.Checks["vocabulary"] != CheckError {
		t.Errorf("vocabulary = %q, want %q", r.Checks["vocabulary"], CheckError)
	}
}

func TestCheck_ModelDown(t *testing.T) {
	svc := New(loadedVocab(), &mockModelChecker{err: errors.New("conn refused")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("status = %q, want %q", r.Status, Degraded)
	}
	if r.Checks["model"] != CheckError {
		t.Errorf("model = %q, want %q", r.Checks["model"], CheckError)
	}
}

func TestCheck_NilModelCheckerSkipped(t *testing.T) {
	svc := New(loadedVocab(), nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("status = %q, want %q", r.Status, Healthy)
	}
	if _, ok := r.Checks["model"]; ok {
		t.Error("model check should be absent when no checker is wired")
	}
}

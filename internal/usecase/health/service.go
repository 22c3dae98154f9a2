package health

import (
	"context"

	"github.com/kloudstax/giftrec/internal/domain"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	vocab VocabularyReader
	model ModelChecker
}

// New creates a Service. model can be nil when the provider exposes no
// cheap availability check.
func New(vocab VocabularyReader, model ModelChecker) *Service {
	return &Service{vocab: vocab, model: model}
}

// Check runs health checks against all components. The vocabulary check
// fails when any category table came up empty at startup.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	checks["vocabulary"] = CheckOK
	for _, cat := range domain.Categories() {
		if s.vocab.Len(cat) == 0 {
			checks["vocabulary"] = CheckError
			break
		}
	}

	if s.model != nil {
		if err := s.model.HealthCheck(ctx); err != nil {
			checks["model"] = CheckError
		} else {
			checks["model"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

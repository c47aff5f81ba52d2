package sched_test

import (
	"testing"

	"awardsearch-service/internal/infrastructure/sched"
)

func TestRegister_ValidExpression(t *testing.T) {
	s := sched.NewScheduler()
	defer s.Stop()

	id, err := s.Register("30 * * * *", func() {})
	if err != nil {
		t.Fatalf("Register returned unexpected error: %v", err)
	}
	if id == 0 {
		t.Error("Register should return a non-zero handle")
	}
	s.Cancel(id)
}

func TestRegister_InvalidExpression(t *testing.T) {
	s := sched.NewScheduler()
	defer s.Stop()

	if _, err := s.Register("not a cron expression", func() {}); err == nil {
		t.Error("Register with garbage expected error, got nil")
	}
}

func TestRegister_HandlesAreDistinct(t *testing.T) {
	s := sched.NewScheduler()
	defer s.Stop()

	a, err := s.Register("0 * * * *", func() {})
	if err != nil {
		t.Fatalf("Register returned unexpected error: %v", err)
	}
	b, err := s.Register("0 * * * *", func() {})
	if err != nil {
		t.Fatalf("Register returned unexpected error: %v", err)
	}
	if a == b {
		t.Errorf("two registrations share handle %d", a)
	}
}

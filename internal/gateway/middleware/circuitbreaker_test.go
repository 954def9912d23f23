package middleware

import (
	"errors"
	"testing"
	"time"
)

var errBackend = errors.New("backend unavailable")

func failing() error { return errBackend }
func succeeding() error { return nil }

func TestCircuitBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", 3, time.Minute)

	for i := 0; i < 3; i++ {
		if err := cb.Call(failing); !errors.Is(err, errBackend) {
			t.Fatalf("call %d error = %v, want backend error", i, err)
		}
	}

	if cb.State() != StateOpen {
		t.Fatalf("state = %s, want open", cb.State())
	}

	// Open circuit rejects without invoking the function
	invoked := false
	err := cb.Call(func() error {
		invoked = true
		return nil
	})
	if err == nil {
		t.Fatal("open circuit allowed a call")
	}
	if invoked {
		t.Fatal("open circuit invoked the function")
	}
}

func TestCircuitBreakerStaysClosedUnderThreshold(t *testing.T) {
	cb := NewCircuitBreaker("test", 3, time.Minute)

	cb.Call(failing)
	cb.Call(failing)
	if cb.State() != StateClosed {
		t.Fatalf("state = %s, want closed under threshold", cb.State())
	}

	// A success resets the failure count
	cb.Call(succeeding)
	cb.Call(failing)
	cb.Call(failing)
	if cb.State() != StateClosed {
		t.Fatalf("state = %s, failure count was not reset on success", cb.State())
	}
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)

	cb.Call(failing)
	if cb.State() != StateOpen {
		t.Fatalf("state = %s, want open", cb.State())
	}

	time.Sleep(20 * time.Millisecond)

	// First call after the timeout probes in half-open
	if err := cb.Call(succeeding); err != nil {
		t.Fatalf("half-open probe failed: %v", err)
	}
	if cb.State() != StateHalfOpen {
		t.Fatalf("state = %s, want half-open after first success", cb.State())
	}

	// Three consecutive successes close the circuit
	cb.Call(succeeding)
	cb.Call(succeeding)
	if cb.State() != StateClosed {
		t.Fatalf("state = %s, want closed after recovery", cb.State())
	}
}

func TestCircuitBreakerReopensOnHalfOpenFailure(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)

	cb.Call(failing)
	time.Sleep(20 * time.Millisecond)

	cb.Call(succeeding)
	if cb.State() != StateHalfOpen {
		t.Fatalf("state = %s, want half-open", cb.State())
	}

	cb.Call(failing)
	if cb.State() != StateOpen {
		t.Fatalf("state = %s, want reopened after half-open failure", cb.State())
	}
}

func TestCircuitBreakerManagerReusesBreakers(t *testing.T) {
	m := NewCircuitBreakerManager()

	first := m.Get("api")
	second := m.Get("api")
	if first != second {
		t.Error("manager created a new breaker for the same service")
	}

	other := m.Get("other")
	if other == first {
		t.Error("manager shared a breaker across services")
	}
}

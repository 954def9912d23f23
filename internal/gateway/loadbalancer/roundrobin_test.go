package loadbalancer

import (
	"sync"
	"testing"
)

func TestRoundRobinRotation(t *testing.T) {
	servers := []string{"http://a:8080", "http://b:8080", "http://c:8080"}
	rr := NewRoundRobin(servers)

	for i := 0; i < 9; i++ {
		want := servers[i%len(servers)]
		if got := rr.Next(); got != want {
			t.Fatalf("Next() call %d = %q, want %q", i, got, want)
		}
	}
}

func TestRoundRobinSingleServer(t *testing.T) {
	rr := NewRoundRobin([]string{"http://only:8080"})

	for i := 0; i < 3; i++ {
		if got := rr.Next(); got != "http://only:8080" {
			t.Fatalf("Next() = %q", got)
		}
	}
}

func TestRoundRobinEmptyFallsBack(t *testing.T) {
	rr := NewRoundRobin(nil)

	if got := rr.Next(); got == "" {
		t.Fatal("Next() returned empty server with default fallback configured")
	}
}

func TestRoundRobinConcurrent(t *testing.T) {
	servers := []string{"http://a:8080", "http://b:8080"}
	rr := NewRoundRobin(servers)

	const calls = 100
	counts := make(map[string]int)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			server := rr.Next()
			mu.Lock()
			counts[server]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	// Strict alternation under concurrency means an even split
	for _, server := range servers {
		if counts[server] != calls/2 {
			t.Errorf("server %q selected %d times, want %d", server, counts[server], calls/2)
		}
	}
}

func TestGetServersReturnsCopy(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080", "http://b:8080"})

	servers := rr.GetServers()
	servers[0] = "http://mutated:8080"

	if got := rr.GetServers()[0]; got != "http://a:8080" {
		t.Errorf("internal server list mutated: %q", got)
	}
}

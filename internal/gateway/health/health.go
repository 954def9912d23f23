package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/CCP-Proyecto/ccp-experimento/internal/gateway/config"
)

// ServiceHealth represents the health status of one backend replica
type ServiceHealth struct {
	Name      string        `json:"name"`
	Status    string        `json:"status"` // healthy, unhealthy
	URL       string        `json:"url"`
	Latency   time.Duration `json:"latency_ms"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// GatewayHealth represents the overall gateway health
type GatewayHealth struct {
	Gateway  string                   `json:"gateway"`
	Status   string                   `json:"status"` // healthy, degraded, unhealthy
	Services map[string]ServiceHealth `json:"services"`
	Uptime   float64                  `json:"uptime_seconds"`
}

// HealthChecker checks health of downstream replicas
type HealthChecker struct {
	config    *config.GatewayConfig
	client    *http.Client
	startTime time.Time
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(cfg *config.GatewayConfig) *HealthChecker {
	return &HealthChecker{
		config: cfg,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		startTime: time.Now(),
	}
}

// QuickCheck reports gateway liveness without touching downstreams
func (h *HealthChecker) QuickCheck() GatewayHealth {
	return GatewayHealth{
		Gateway: "api-gateway",
		Status:  "healthy",
		Uptime:  time.Since(h.startTime).Seconds(),
	}
}

// CheckAllServices fans out to every replica of every configured service
func (h *HealthChecker) CheckAllServices(ctx context.Context) GatewayHealth {
	results := make(map[string]ServiceHealth)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for name, svc := range h.config.Services {
		for i, instance := range svc.Instances {
			wg.Add(1)
			go func(key, url, healthPath string) {
				defer wg.Done()
				result := h.checkInstance(ctx, key, url, healthPath)
				mu.Lock()
				results[key] = result
				mu.Unlock()
			}(fmt.Sprintf("%s-%d", name, i), instance, svc.HealthCheck)
		}
	}
	wg.Wait()

	status := "healthy"
	unhealthy := 0
	for _, r := range results {
		if r.Status != "healthy" {
			unhealthy++
		}
	}
	if unhealthy > 0 && unhealthy < len(results) {
		status = "degraded"
	} else if unhealthy > 0 {
		status = "unhealthy"
	}

	return GatewayHealth{
		Gateway:  "api-gateway",
		Status:   status,
		Services: results,
		Uptime:   time.Since(h.startTime).Seconds(),
	}
}

func (h *HealthChecker) checkInstance(ctx context.Context, name, baseURL, healthPath string) ServiceHealth {
	start := time.Now()
	result := ServiceHealth{
		Name:      name,
		URL:       baseURL,
		Timestamp: time.Now(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+healthPath, nil)
	if err != nil {
		result.Status = "unhealthy"
		result.Error = err.Error()
		return result
	}

	resp, err := h.client.Do(req)
	result.Latency = time.Since(start)
	if err != nil {
		result.Status = "unhealthy"
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("status %d", resp.StatusCode)
		return result
	}

	result.Status = "healthy"
	return result
}

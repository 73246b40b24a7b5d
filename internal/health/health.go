package health

import (
	"context"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Target is one upstream provider endpoint to probe.
type Target struct {
	Name string
	URL  string
}

// ProviderStatus is the outcome of the most recent probe of one provider.
type ProviderStatus struct {
	Provider  string    `json:"provider"`
	OK        bool      `json:"ok"`
	Status    int       `json:"status,omitempty"`
	LatencyMS int64     `json:"latencyMs"`
	CheckedAt time.Time `json:"checkedAt"`
	Error     string    `json:"error,omitempty"`
}

// Monitor periodically probes upstream providers for reachability and keeps
// the latest result per provider. It holds provider status only; pipeline
// data is never cached here.
type Monitor struct {
	scheduler *gocron.Scheduler
	client    *http.Client
	targets   []Target
	interval  time.Duration

	mu       sync.RWMutex
	statuses map[string]ProviderStatus
}

// New creates a Monitor probing the given targets every interval.
func New(client *http.Client, targets []Target, interval time.Duration) *Monitor {
	return &Monitor{
		scheduler: gocron.NewScheduler(time.UTC),
		client:    client,
		targets:   targets,
		interval:  interval,
		statuses:  make(map[string]ProviderStatus),
	}
}

// Start runs an immediate probe and schedules the periodic job.
func (m *Monitor) Start() error {
	if len(m.targets) == 0 {
		log.Println("health: no probe targets configured; nothing to schedule")
		return nil
	}

	seconds := int(m.interval.Seconds())
	if seconds <= 0 {
		seconds = 300
	}

	_, err := m.scheduler.Every(seconds).Seconds().Do(m.probeAll)
	if err != nil {
		return err
	}

	go m.probeAll()
	m.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels future probes.
func (m *Monitor) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
}

// Statuses returns the latest probe result per provider, ordered by name.
func (m *Monitor) Statuses() []ProviderStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ProviderStatus, 0, len(m.statuses))
	for _, st := range m.statuses {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out
}

func (m *Monitor) probeAll() {
	for _, target := range m.targets {
		status := m.probe(target)
		if !status.OK {
			log.Printf("health: probe of %s failed: %s", target.Name, status.Error)
		}

		m.mu.Lock()
		m.statuses[target.Name] = status
		m.mu.Unlock()
	}
}

func (m *Monitor) probe(target Target) ProviderStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	started := time.Now()
	status := ProviderStatus{Provider: target.Name, CheckedAt: started.UTC()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		status.Error = err.Error()
		return status
	}

	resp, err := m.client.Do(req)
	status.LatencyMS = time.Since(started).Milliseconds()
	if err != nil {
		status.Error = err.Error()
		return status
	}
	defer resp.Body.Close()

	status.Status = resp.StatusCode
	// Any response below 500 counts as reachable; 4xx just means the probe
	// URL is stricter than the probe.
	if resp.StatusCode < 500 {
		status.OK = true
	} else {
		status.Error = resp.Status
	}
	return status
}

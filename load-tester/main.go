package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

type Config struct {
	Endpoint       string
	Total          int
	Rate           int
	Concurrency    int
	OverlapPercent int
}

func parseFlags() *Config {
	c := &Config{}
	flag.StringVar(&c.Endpoint, "endpoint", "", "Target URL (required)")
	flag.IntVar(&c.Total, "total", 10000, "Total requests")
	flag.IntVar(&c.Rate, "rate", 2000, "Requests per second")
	flag.IntVar(&c.Concurrency, "concurrency", 0, "Worker count (0=auto)")
	flag.IntVar(&c.OverlapPercent, "overlap-percent", 0, "Percent of status changes followed by an explicit Call_Completed for the same item (0 = none)")
	flag.Parse()

	if c.Endpoint == "" {
		fmt.Fprintln(os.Stderr, "Error: -endpoint is required")
		flag.Usage()
		os.Exit(1)
	}

	if c.Concurrency == 0 {
		c.Concurrency = c.Rate / 20 // Auto-scale workers
		if c.Concurrency < 50 {
			c.Concurrency = 50
		}
	}

	if c.OverlapPercent > 100 {
		c.OverlapPercent = 100
	} else if c.OverlapPercent < 0 {
		c.OverlapPercent = 0
	}

	return c
}

type Stats struct {
	ok      uint64
	errors  uint64
	latency int64 // microseconds
}

func (s *Stats) AddOK(duration time.Duration) {
	atomic.AddUint64(&s.ok, 1)
	atomic.AddInt64(&s.latency, duration.Microseconds())
}

func (s *Stats) AddError() {
	atomic.AddUint64(&s.errors, 1)
}

func (s *Stats) StartLogger(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	var lastOK, lastErr uint64

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok := atomic.LoadUint64(&s.ok)
			errs := atomic.LoadUint64(&s.errors)
			latTotal := atomic.LoadInt64(&s.latency)

			curOK := ok - lastOK
			curErr := errs - lastErr
			lastOK, lastErr = ok, errs

			avgLat := 0.0
			if ok > 0 {
				avgLat = float64(latTotal) / float64(ok) / 1000.0
			}

			log.Printf("[STATS] 1s -> OK: %d | ERR: %d | AvgLat: %.2fms | Total OK: %d", curOK, curErr, avgLat, ok)
		}
	}
}

func main() {
	cfg := parseFlags()
	stats := &Stats{}

	// High-performance HTTP Client
	client := &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        cfg.Concurrency,
			MaxIdleConnsPerHost: cfg.Concurrency, // Critical: Keep as many connections open as there are workers.
			IdleConnTimeout:     90 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}

	log.Printf("Starting Load Test: Target=%s Rate=%d/s Total=%d Workers=%d", cfg.Endpoint, cfg.Rate, cfg.Total, cfg.Concurrency)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stats Logger
	go stats.StartLogger(ctx)

	// Job Queue
	jobs := make(chan struct{}, cfg.Rate*2)
	var wg sync.WaitGroup
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rngs := make([]*rand.Rand, cfg.Concurrency)
	for i := 0; i < cfg.Concurrency; i++ {
		rngs[i] = rand.New(rand.NewSource(rng.Int63()))
	}

	// Workers
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go startWorker(client, cfg.Endpoint, jobs, stats, cfg.OverlapPercent, rngs[i], &wg)
	}

	// Rate Limiter (Main Loop)
	remaining := cfg.Total
	for remaining > 0 {
		start := time.Now()
		batch := cfg.Rate
		if remaining < batch {
			batch = remaining
		}

		for i := 0; i < batch; i++ {
			jobs <- struct{}{}
		}
		remaining -= batch

		elapsed := time.Since(start)
		if elapsed < time.Second {
			time.Sleep(time.Second - elapsed)
		}
	}

	close(jobs)
	wg.Wait()

	log.Printf("DONE. Total OK: %d | Total Errors: %d", atomic.LoadUint64(&stats.ok), atomic.LoadUint64(&stats.errors))
}

func startWorker(client *http.Client, endpoint string, jobs <-chan struct{}, stats *Stats, overlapPercent int, rng *rand.Rand, wg *sync.WaitGroup) {
	defer wg.Done()

	headers := http.Header{"Content-Type": []string{"application/json"}}

	for range jobs {
		for _, activity := range generateActivities(rng, overlapPercent) {
			start := time.Now()

			err := sendActivity(client, endpoint, activity, headers)
			if err != nil {
				stats.AddError()
			} else {
				stats.AddOK(time.Since(start))
			}
		}
	}
}

func sendActivity(client *http.Client, url string, data any, headers http.Header) error {
	body, _ := json.Marshal(data)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header = headers

	resp, err := client.Do(req)
	if err != nil {
		return err
	}

	// Performance Hack: Read and discard the Body so the connection can be reused (Keep-Alive)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("http status: %d", resp.StatusCode)
	}
	return nil
}

var (
	bdrs = []string{"Ana", "Bea", "Chris", "Dana", "Eli"}

	activityTypes = []string{"Call_Completed", "Agreement_Sent", "Partner_List_Sent", "Note_Added", "Status_Change"}

	postCallStatuses = []string{
		"Call Conducted", "Agreement - Profile", "Agreement - Media",
		"Sold", "No Show", "Rescheduled", "Declined",
	}

	notes = []string{
		"follow up next week",
		"sent the media kit",
		"sold the premium package for £2500",
		"waiting on legal review",
	}
)

// generateActivities produces one random activity, plus an explicit
// Call_Completed for the same pipeline item when the overlap knob fires.
// Overlapping events land inside the server's reconciliation proximity
// window, so they should collapse into a single completion in the reports.
func generateActivities(rng *rand.Rand, overlapPercent int) []map[string]any {
	activity := randomActivity(rng)
	out := []map[string]any{activity}

	if activity["activity_type"] == "Status_Change" && overlapPercent > 0 && rng.Intn(100) < overlapPercent {
		out = append(out, map[string]any{
			"bdr":              activity["bdr"],
			"activity_type":    "Call_Completed",
			"timestamp":        activity["timestamp"].(int64) + int64(rng.Intn(30)),
			"pipeline_item_id": activity["pipeline_item_id"],
		})
	}
	return out
}

func randomActivity(rng *rand.Rand) map[string]any {
	activity := map[string]any{
		"bdr":              bdrs[rng.Intn(len(bdrs))],
		"activity_type":    activityTypes[rng.Intn(len(activityTypes))],
		"timestamp":        time.Now().Unix() - int64(rng.Intn(60)), // Last 60 seconds
		"pipeline_item_id": fmt.Sprintf("item_%05d", rng.Intn(10000)),
	}

	switch activity["activity_type"] {
	case "Status_Change":
		activity["previous_status"] = "Call Booked"
		activity["new_status"] = postCallStatuses[rng.Intn(len(postCallStatuses))]
	case "Note_Added":
		activity["notes"] = notes[rng.Intn(len(notes))]
	}

	return activity
}

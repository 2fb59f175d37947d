package loadgen

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sandeepkv93/catalog-api/internal/observability"
)

type Config struct {
	BaseURL     string
	Token       string
	Profile     string
	Duration    time.Duration
	RPS         int
	Concurrency int
	Seed        uint64
}

type Result struct {
	TotalRequests int64
	Failures      int64
	Status2xx     int64
	Status4xx     int64
	Status5xx     int64
}

// request is one templated call; anonymous requests skip the bearer token.
type request struct {
	method    string
	path      string
	body      string
	anonymous bool
}

func Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Duration <= 0 {
		cfg.Duration = 10 * time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 15
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	profile := strings.ToLower(strings.TrimSpace(cfg.Profile))
	if profile == "" {
		profile = "mixed"
	}
	templates := requestsForProfile(profile)
	if len(templates) == 0 {
		return Result{}, fmt.Errorf("unknown profile: %s", cfg.Profile)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	var total, failures, s2xx, s4xx, s5xx atomic.Int64
	jobs := make(chan request, cfg.Concurrency*2)

	g, gctx := errgroup.WithContext(ctx)
	for range cfg.Concurrency {
		g.Go(func() error {
			for job := range jobs {
				status, err := send(gctx, client, cfg, job)
				if err != nil {
					failures.Add(1)
					observability.RecordLoadgenRequest(gctx, "error", profile)
					continue
				}
				total.Add(1)
				class := statusClass(status)
				switch class {
				case "2xx":
					s2xx.Add(1)
				case "4xx":
					s4xx.Add(1)
				case "5xx":
					s5xx.Add(1)
				}
				observability.RecordLoadgenRequest(gctx, class, profile)
			}
			return nil
		})
	}

	ticker := time.NewTicker(time.Second / time.Duration(cfg.RPS))
	defer ticker.Stop()
	seq := 0
produce:
	for {
		select {
		case <-ctx.Done():
			break produce
		case <-ticker.C:
			job := expand(templates[seq%len(templates)], seq, rng)
			seq++
			select {
			case jobs <- job:
			case <-ctx.Done():
				break produce
			}
		}
	}
	close(jobs)
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return Result{
		TotalRequests: total.Load(),
		Failures:      failures.Load(),
		Status2xx:     s2xx.Load(),
		Status4xx:     s4xx.Load(),
		Status5xx:     s5xx.Load(),
	}, nil
}

func send(ctx context.Context, client *http.Client, cfg Config, job request) (int, error) {
	var body io.Reader
	if job.body != "" {
		body = strings.NewReader(job.body)
	}
	req, err := http.NewRequestWithContext(ctx, job.method, cfg.BaseURL+job.path, body)
	if err != nil {
		return 0, err
	}
	if job.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if !job.anonymous && cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return resp.StatusCode, nil
}

func statusClass(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "other"
	}
}

// expand fills the {id}, {n} and {page} placeholders of a template.
func expand(tpl request, seq int, rng *rand.Rand) request {
	r := strings.NewReplacer(
		"{id}", fmt.Sprint(1+rng.IntN(20)),
		"{n}", fmt.Sprint(seq),
		"{page}", fmt.Sprint(1+rng.IntN(3)),
	)
	tpl.path = r.Replace(tpl.path)
	tpl.body = r.Replace(tpl.body)
	return tpl
}

func requestsForProfile(profile string) []request {
	read := []request{
		{method: http.MethodGet, path: "/api/categories/get?page={page}&limit=10"},
		{method: http.MethodGet, path: "/api/products/get?page={page}&limit=10"},
		{method: http.MethodGet, path: "/api/categories/{id}/get"},
		{method: http.MethodGet, path: "/api/products/{id}/get"},
	}
	switch profile {
	case "read":
		return read
	case "mixed":
		return append(read,
			request{method: http.MethodPost, path: "/api/categories/create", body: `{"name":"loadgen-{n}","description":"generated"}`},
			request{method: http.MethodPost, path: "/api/products/create", body: `{"name":"loadgen-{n}","description":"generated","price":9.99,"categoryId":{id}}`},
			request{method: http.MethodPut, path: "/api/products/{id}/update", body: `{"name":"loadgen-{n}","description":"updated","price":19.99,"categoryId":1}`},
			request{method: http.MethodGet, path: "/health/ready", anonymous: true},
		)
	case "error-heavy":
		return []request{
			{method: http.MethodGet, path: "/api/categories/get", anonymous: true},
			{method: http.MethodGet, path: "/api/products/999999/get"},
			{method: http.MethodPost, path: "/api/categories/create", body: `{"name":""}`},
			{method: http.MethodPost, path: "/api/products/create", body: `{"name":"x","description":"y","price":1,"categoryId":999999}`},
			{method: http.MethodDelete, path: "/api/categories/0/delete"},
		}
	default:
		return nil
	}
}

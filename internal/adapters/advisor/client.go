package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/cargoplan/cargoplan/internal/application/assign"
	"github.com/cargoplan/cargoplan/internal/domain/shared"
	"github.com/cargoplan/cargoplan/internal/infrastructure/config"
)

const (
	defaultTimeout      = 30 * time.Second
	breakerMaxFailures  = 5
	breakerCooldown     = 2 * time.Minute
	completionsEndpoint = "/chat/completions"
)

// Client talks to an OpenAI-compatible chat completion endpoint and adapts
// it to the Advisor port. Every method returns AdvisorUnavailableError on
// failure so callers can degrade without inspecting transport details.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	baseURL     string
	apiKey      string
	model       string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
}

// NewClient creates an advisor client from configuration.
// If clock is nil, uses RealClock.
func NewClient(cfg *config.AdvisorConfig, clock shared.Clock) *Client {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit.Requests), cfg.RateLimit.Burst),
		breaker:     NewCircuitBreaker(breakerMaxFailures, breakerCooldown, clock),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxRetries:  cfg.Retry.MaxAttempts,
		backoffBase: cfg.Retry.BackoffBase,
		clock:       clock,
	}
}

// ProposeVoyage asks the model to pick one voyage from the candidate list.
// The reply must be JSON; anything unparseable is an advisor failure, never
// a guessed assignment.
func (c *Client) ProposeVoyage(ctx context.Context, s assign.ShipmentContext, candidates []assign.CandidateVoyage) (*assign.Proposal, error) {
	shipmentJSON, err := json.Marshal(s)
	if err != nil {
		return nil, shared.NewAdvisorUnavailableError(err)
	}
	candidatesJSON, err := json.Marshal(candidates)
	if err != nil {
		return nil, shared.NewAdvisorUnavailableError(err)
	}

	system := "You are a cargo planning assistant. Pick the best voyage for a shipment. " +
		"Reply with only a JSON object: {\"voyageCode\": \"...\", \"why\": \"...\"}. " +
		"If none of the candidates is suitable, reply {\"voyageCode\": null}."
	user := fmt.Sprintf("Shipment:\n%s\n\nCandidate voyages (all pre-checked for lane, dates and capacity):\n%s",
		shipmentJSON, candidatesJSON)

	content, err := c.complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	var reply struct {
		VoyageCode *string `json:"voyageCode"`
		Why        string  `json:"why"`
	}
	if err := json.Unmarshal(extractJSONObject(content), &reply); err != nil {
		return nil, shared.NewAdvisorUnavailableError(fmt.Errorf("unparseable proposal: %w", err))
	}
	if reply.VoyageCode == nil || *reply.VoyageCode == "" {
		return nil, nil
	}
	return &assign.Proposal{VoyageCode: *reply.VoyageCode, Why: reply.Why}, nil
}

// PlanNarrative produces a short prose summary of a load plan
func (c *Client) PlanNarrative(ctx context.Context, plan assign.PlanSummary) (string, error) {
	planJSON, err := json.Marshal(struct {
		VesselName  string            `json:"vesselName"`
		WeightCapT  *float64          `json:"weightCapT"`
		VolumeCapM3 *float64          `json:"volumeCapM3"`
		Assigned    []string          `json:"assigned"`
		Skipped     map[string]string `json:"skipped"`
		WeightPct   int               `json:"weightPct"`
		VolumePct   int               `json:"volumePct"`
	}(plan))
	if err != nil {
		return "", shared.NewAdvisorUnavailableError(err)
	}

	system := "You are a cargo planning assistant. Summarize the load plan in two or three " +
		"plain sentences for an operations manager. Mention utilization and why shipments were skipped."
	return c.complete(ctx, system, string(planJSON))
}

// RouteHint proposes non-binding multi-leg routing ideas for a shipment
// with no feasible direct voyage
func (c *Client) RouteHint(ctx context.Context, hint assign.HintContext) (string, error) {
	hintJSON, err := json.Marshal(hint)
	if err != nil {
		return "", shared.NewAdvisorUnavailableError(err)
	}

	system := "You are a cargo routing assistant. No direct voyage fits this shipment. " +
		"Suggest at most two multi-leg routings using the listed voyages, in two sentences. " +
		"These are ideas for a human planner, not bookings."
	return c.complete(ctx, system, string(hintJSON))
}

// complete performs one chat completion with rate limiting, retries with
// exponential backoff plus jitter, and circuit breaker protection.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	var content string
	err := c.breaker.Call(func() error {
		var lastErr error
		for attempt := 0; attempt <= c.maxRetries; attempt++ {
			if err := c.rateLimiter.Wait(ctx); err != nil {
				return fmt.Errorf("rate limiter error: %w", err)
			}

			text, err := c.completeOnce(ctx, system, user)
			if err == nil {
				content = text
				return nil
			}
			lastErr = err

			if attempt >= c.maxRetries {
				break
			}
			if ctx.Err() != nil {
				return fmt.Errorf("context cancelled: %w", ctx.Err())
			}
			c.clock.Sleep(addJitter(c.backoffBase * time.Duration(1<<attempt)))
		}
		return lastErr
	})
	if err != nil {
		return "", shared.NewAdvisorUnavailableError(err)
	}
	return content, nil
}

func (c *Client) completeOnce(ctx context.Context, system, user string) (string, error) {
	payload := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": 0.2,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsEndpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion request failed with status %d: %s", resp.StatusCode, respBody)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// extractJSONObject pulls the first {...} block out of a completion. Models
// wrap JSON in prose or code fences often enough that strict parsing of the
// raw reply loses valid proposals.
func extractJSONObject(content string) []byte {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return []byte(content)
	}
	return []byte(content[start : end+1])
}

// addJitter randomizes a backoff duration to avoid thundering herd
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64() // 0.5 to 1.5
	return time.Duration(float64(d) * jitter)
}

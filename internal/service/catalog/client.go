package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/pokedex-go/internal/constants"
	"github.com/kapu/pokedex-go/internal/domain"
	"github.com/kapu/pokedex-go/internal/util"
	"github.com/kapu/pokedex-go/pkg/errors"
)

// Client talks to PokéAPI. It never caches and never retries: each call
// is at most one HTTP request. While the circuit breaker is open calls
// fail at once without touching the network.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
	breaker    *util.CircuitBreaker
}

func NewClient(httpClient *http.Client, baseURL string, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.APIConfig.PokeAPITimeout}
	}
	if baseURL == "" {
		baseURL = constants.APIConfig.PokeAPIBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	breaker := util.NewCircuitBreaker("pokeapi",
		constants.CircuitBreakerConfig.FailureThreshold,
		constants.CircuitBreakerConfig.ResetTimeout,
		logger,
	)
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
		breaker:    breaker,
	}
}

// NewHTTPClient returns the http.Client used for catalog calls. A zero
// timeout leaves the transport defaults in place.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// DoRequest issues one GET. Transport failures and unexpected statuses
// become NETWORK_ERROR, 404 becomes NOT_FOUND.
func (c *Client) DoRequest(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.NewNetworkError("failed to build request", rawURL, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constants.APIConfig.UserAgent)

	if !c.breaker.CanExecute() {
		retryAfter := c.breaker.RetryAfter()
		c.logger.Warn("Circuit breaker is open", zap.Duration("retry_after", retryAfter))
		return nil, errors.NewNetworkError("circuit breaker open", rawURL, http.StatusServiceUnavailable, nil)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == nil {
			c.breaker.RecordFailure()
		} else {
			c.breaker.ReleaseProbe()
		}
		c.logger.Warn("Catalog request failed",
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return nil, errors.NewNetworkError("catalog request failed", rawURL, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.breaker.RecordFailure()
		return nil, errors.NewNetworkError("failed to read response body", rawURL, resp.StatusCode, err)
	}

	c.logger.Debug("Catalog request",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("bytes", len(body)),
	)

	if resp.StatusCode >= http.StatusInternalServerError {
		c.breaker.RecordFailure()
	} else {
		c.breaker.RecordSuccess()
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NewNotFoundError("catalog entry not found", rawURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewNetworkError(fmt.Sprintf("unexpected status: %d", resp.StatusCode), rawURL, resp.StatusCode, nil)
	}

	return body, nil
}

// ListCategories returns every type in API order.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	reqURL := c.baseURL + "/type"
	body, err := c.DoRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var raw domain.TypeListRaw
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.NewParseError("invalid type list body", reqURL, err)
	}
	if raw.Results == nil {
		return nil, errors.NewParseError("type list body has no results", reqURL, nil)
	}

	categories := make([]domain.Category, 0, len(*raw.Results))
	for _, r := range *raw.Results {
		if r.Name == "" {
			return nil, errors.NewParseError("type entry without name", reqURL, nil)
		}
		categories = append(categories, domain.Category{Name: r.Name, URL: r.URL})
	}
	return categories, nil
}

// ListMembers fetches the members of the category behind ref. ref is
// normally a URL returned by ListCategories; relative references are
// resolved against the base URL.
func (c *Client) ListMembers(ctx context.Context, ref string) ([]domain.MemberSummary, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, errors.NewValidationError("category reference is required", "ref", ref)
	}
	reqURL := c.resolve(ref)

	body, err := c.DoRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var raw domain.TypeDetailRaw
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.NewParseError("invalid type detail body", reqURL, err)
	}
	if raw.Pokemon == nil {
		return nil, errors.NewParseError("type detail body has no pokemon list", reqURL, nil)
	}

	members := make([]domain.MemberSummary, 0, len(*raw.Pokemon))
	for _, entry := range *raw.Pokemon {
		if entry.Pokemon == nil || entry.Pokemon.Name == "" {
			return nil, errors.NewParseError("type member without name", reqURL, nil)
		}
		members = append(members, domain.MemberSummary{Name: entry.Pokemon.Name, URL: entry.Pokemon.URL})
	}
	return members, nil
}

// GetMemberDetail fetches one Pokémon by name.
func (c *Client) GetMemberDetail(ctx context.Context, name string) (*domain.MemberDetail, error) {
	name = util.Normalize(name)
	if name == "" {
		return nil, errors.NewValidationError("pokemon name is required", "name", name)
	}
	reqURL := c.baseURL + "/pokemon/" + url.PathEscape(name)

	body, err := c.DoRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var raw domain.PokemonRaw
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.NewParseError("invalid pokemon body", reqURL, err)
	}
	if raw.Name == "" {
		return nil, errors.NewParseError("pokemon body has no name", reqURL, nil)
	}

	return raw.ToDetail(), nil
}

func (c *Client) resolve(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return c.baseURL + "/" + strings.TrimLeft(ref, "/")
}

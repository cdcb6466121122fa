package catalog

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/pokedex-go/internal/constants"
	"github.com/kapu/pokedex-go/internal/util"
	"github.com/kapu/pokedex-go/pkg/errors"
)

const typeListBody = `{
  "count": 2,
  "results": [
    {"name": "normal", "url": "%s/type/1/"},
    {"name": "fire", "url": "%s/type/10/"}
  ]
}`

const fireTypeBody = `{
  "id": 10,
  "name": "fire",
  "pokemon": [
    {"slot": 1, "pokemon": {"name": "charmander", "url": "https://pokeapi.co/api/v2/pokemon/4/"}},
    {"slot": 1, "pokemon": {"name": "vulpix", "url": "https://pokeapi.co/api/v2/pokemon/37/"}}
  ]
}`

const bulbasaurBody = `{
  "id": 1,
  "name": "bulbasaur",
  "weight": 69,
  "height": 7,
  "sprites": {
    "front_default": "https://img/front/1.png",
    "other": {"official-artwork": {"front_default": "https://img/art/1.png"}}
  },
  "abilities": [
    {"ability": {"name": "overgrow", "url": ""}, "is_hidden": false, "slot": 1},
    {"ability": {"name": "chlorophyll", "url": ""}, "is_hidden": true, "slot": 3}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/type", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fmt.Sprintf(typeListBody, server.URL, server.URL)))
	})
	mux.HandleFunc("/type/10/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fireTypeBody))
	})
	mux.HandleFunc("/type/99/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 99, "name": "broken"}`))
	})
	mux.HandleFunc("/type/500/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/pokemon/bulbasaur", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bulbasaurBody))
	})
	mux.HandleFunc("/pokemon/garbage", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})
	mux.HandleFunc("/pokemon/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T) (*Client, *httptest.Server) {
	server := newTestServer(t)
	return NewClient(server.Client(), server.URL+"/", zap.NewNop()), server
}

func TestListCategories(t *testing.T) {
	client, server := newTestClient(t)

	categories, err := client.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[1].Name != "fire" || categories[1].URL != server.URL+"/type/10/" {
		t.Fatalf("unexpected category %+v", categories[1])
	}
}

func TestListMembersPreservesOrder(t *testing.T) {
	client, server := newTestClient(t)

	members, err := client.ListMembers(context.Background(), server.URL+"/type/10/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 2 || members[0].Name != "charmander" || members[1].Name != "vulpix" {
		t.Fatalf("unexpected members %+v", members)
	}
}

func TestListMembersResolvesRelativeReference(t *testing.T) {
	client, _ := newTestClient(t)

	members, err := client.ListMembers(context.Background(), "type/10/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
}

func TestListMembersMissingListIsParseError(t *testing.T) {
	client, server := newTestClient(t)

	_, err := client.ListMembers(context.Background(), server.URL+"/type/99/")
	if !stderrors.Is(err, errors.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestListCategoriesMissingResultsIsParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count": 0}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.Client(), server.URL, zap.NewNop())
	if _, err := client.ListCategories(context.Background()); !stderrors.Is(err, errors.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestListMembersServerErrorIsNetworkError(t *testing.T) {
	client, server := newTestClient(t)

	_, err := client.ListMembers(context.Background(), server.URL+"/type/500/")
	if !stderrors.Is(err, errors.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	var catalogErr *errors.CatalogError
	if !stderrors.As(err, &catalogErr) || catalogErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500 on catalog error, got %v", err)
	}
}

func TestListMembersRejectsEmptyReference(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.ListMembers(context.Background(), "  ")
	var validationErr *errors.ValidationError
	if !stderrors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetMemberDetail(t *testing.T) {
	client, _ := newTestClient(t)

	detail, err := client.GetMemberDetail(context.Background(), "Bulbasaur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Name != "bulbasaur" || detail.Weight != 69 || detail.Height != 7 {
		t.Fatalf("unexpected detail %+v", detail)
	}
	if detail.ImageURL != "https://img/art/1.png" {
		t.Fatalf("expected official artwork, got %q", detail.ImageURL)
	}
	if len(detail.Abilities) != 2 || detail.Abilities[0].Name != "overgrow" || !detail.Abilities[1].IsHidden {
		t.Fatalf("unexpected abilities %+v", detail.Abilities)
	}
}

func TestGetMemberDetailUnknownIsNotFound(t *testing.T) {
	client, _ := newTestClient(t)

	detail, err := client.GetMemberDetail(context.Background(), "missingno")
	if !stderrors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if detail != nil {
		t.Fatalf("expected no detail, got %+v", detail)
	}
}

func TestGetMemberDetailInvalidJSONIsParseError(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.GetMemberDetail(context.Background(), "garbage")
	if !stderrors.Is(err, errors.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := NewClient(&http.Client{}, baseURL, zap.NewNop())
	_, err := client.ListCategories(context.Background())
	if !stderrors.Is(err, errors.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestCircuitBreakerStopsRequestsAfterRepeatedFailures(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.Client(), server.URL, zap.NewNop())
	for i := 0; i < constants.CircuitBreakerConfig.FailureThreshold; i++ {
		if _, err := client.ListCategories(context.Background()); !stderrors.Is(err, errors.ErrNetwork) {
			t.Fatalf("call %d: expected network error, got %v", i, err)
		}
	}

	_, err := client.ListCategories(context.Background())
	var catalogErr *errors.CatalogError
	if !stderrors.As(err, &catalogErr) || catalogErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected open circuit error, got %v", err)
	}
	if int(hits.Load()) != constants.CircuitBreakerConfig.FailureThreshold {
		t.Fatalf("expected no request while circuit is open, got %d hits", hits.Load())
	}

	client.breaker.Reset()
	if _, err := client.ListCategories(context.Background()); err == nil {
		t.Fatalf("expected upstream error after reset")
	}
	if int(hits.Load()) != constants.CircuitBreakerConfig.FailureThreshold+1 {
		t.Fatalf("expected request after reset, got %d hits", hits.Load())
	}
}

func TestNotFoundDoesNotTripCircuit(t *testing.T) {
	client, _ := newTestClient(t)
	for i := 0; i < constants.CircuitBreakerConfig.FailureThreshold+1; i++ {
		if _, err := client.GetMemberDetail(context.Background(), "missingno"); !stderrors.Is(err, errors.ErrNotFound) {
			t.Fatalf("call %d: expected not found, got %v", i, err)
		}
	}
}

func TestCancelledProbeFreesHalfOpenSlot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	client := NewClient(server.Client(), server.URL, zap.NewNop())
	client.breaker.SetClock(func() time.Time { return now })

	for i := 0; i < constants.CircuitBreakerConfig.FailureThreshold; i++ {
		_, _ = client.ListCategories(context.Background())
	}
	now = now.Add(constants.CircuitBreakerConfig.ResetTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.ListCategories(ctx); err == nil {
		t.Fatalf("expected cancelled request to fail")
	}
	if client.breaker.State() != util.CircuitStateHalfOpen {
		t.Fatalf("expected circuit to stay half-open, got %s", client.breaker.State())
	}

	_, err := client.ListCategories(context.Background())
	var catalogErr *errors.CatalogError
	if !stderrors.As(err, &catalogErr) || catalogErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected probe to reach the server, got %v", err)
	}
	if client.breaker.State() != util.CircuitStateOpen {
		t.Fatalf("expected failed probe to reopen, got %s", client.breaker.State())
	}
}

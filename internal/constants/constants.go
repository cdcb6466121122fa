package constants

import "time"

var APIConfig = struct {
	PokeAPIBaseURL string
	PokeAPITimeout time.Duration
	UserAgent      string
}{
	PokeAPIBaseURL: "https://pokeapi.co/api/v2",
	PokeAPITimeout: 15 * time.Second, // 0 keeps the transport defaults
	UserAgent:      "pokedex-go/1.0",
}

var CircuitBreakerConfig = struct {
	FailureThreshold int
	ResetTimeout     time.Duration
}{
	FailureThreshold: 5,
	ResetTimeout:     30 * time.Second,
}

var StorageConfig = struct {
	CaughtKey     string
	DefaultFile   string
	PostgresTable string
	DialTimeout   time.Duration
}{
	CaughtKey:     "caughtPokemon",
	DefaultFile:   "pokedex/storage.json",
	PostgresTable: "kv_store",
	DialTimeout:   5 * time.Second,
}

var BootstrapConfig = struct {
	Timeout time.Duration
}{
	Timeout: 30 * time.Second,
}

var UIConfig = struct {
	NoticeFade      time.Duration
	SuggestionLimit int
	MaxNameWidth    int
}{
	NoticeFade:      3 * time.Second,
	SuggestionLimit: 3,
	MaxNameWidth:    32,
}

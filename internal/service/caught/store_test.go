package caught

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"slices"
	"testing"

	"go.uber.org/zap"

	"github.com/kapu/pokedex-go/internal/service/storage"
	apperrors "github.com/kapu/pokedex-go/pkg/errors"
)

const testKey = "caughtPokemon"

type failingBlob struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingBlob) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, f.getErr
}

func (f *failingBlob) Set(context.Context, string, []byte) error {
	f.sets++
	return f.setErr
}

func (f *failingBlob) Close() error { return nil }

func persisted(t *testing.T, blob storage.BlobStore) []string {
	t.Helper()
	data, found, err := blob.Get(context.Background(), testKey)
	if err != nil || !found {
		t.Fatalf("expected persisted value, got found=%v err=%v", found, err)
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		t.Fatalf("persisted value is not a JSON array: %s", data)
	}
	return names
}

func TestLoadWithNoPersistedData(t *testing.T) {
	store := Load(context.Background(), storage.NewMemoryStore(), testKey, zap.NewNop())

	if store.Len() != 0 {
		t.Fatalf("expected empty set, got %v", store.Names())
	}
	for _, name := range []string{"pikachu", "", "MISSINGNO"} {
		if store.IsCaught(name) {
			t.Fatalf("expected %q not to be caught", name)
		}
	}
}

func TestLoadCorruptDataYieldsEmptySet(t *testing.T) {
	for name, body := range map[string]string{
		"not json":       "{oops",
		"wrong shape":    `{"caught":["pikachu"]}`,
		"mixed elements": `["pikachu", 3]`,
	} {
		t.Run(name, func(t *testing.T) {
			blob := storage.NewMemoryStore()
			_ = blob.Set(context.Background(), testKey, []byte(body))

			store := Load(context.Background(), blob, testKey, zap.NewNop())
			if store.Len() != 0 || store.IsCaught("pikachu") {
				t.Fatalf("expected empty set, got %v", store.Names())
			}
		})
	}
}

func TestLoadReadErrorYieldsEmptySet(t *testing.T) {
	store := Load(context.Background(), &failingBlob{getErr: stderrors.New("connection refused")}, testKey, zap.NewNop())
	if store.Len() != 0 {
		t.Fatalf("expected empty set, got %v", store.Names())
	}
}

func TestLoadCollapsesDuplicates(t *testing.T) {
	blob := storage.NewMemoryStore()
	_ = blob.Set(context.Background(), testKey, []byte(`["squirtle","pikachu","squirtle"]`))

	store := Load(context.Background(), blob, testKey, zap.NewNop())
	if got := store.Names(); !slices.Equal(got, []string{"squirtle", "pikachu"}) {
		t.Fatalf("unexpected names %v", got)
	}
}

func TestLoadDropsNullAndEmptyNames(t *testing.T) {
	blob := storage.NewMemoryStore()
	_ = blob.Set(context.Background(), testKey, []byte(`["pikachu", null, ""]`))

	store := Load(context.Background(), blob, testKey, zap.NewNop())
	if got := store.Names(); !slices.Equal(got, []string{"pikachu"}) {
		t.Fatalf("unexpected names %v", got)
	}
	if store.IsCaught("") {
		t.Fatalf("expected empty name not to be caught")
	}

	if _, err := store.Toggle(context.Background(), "bulbasaur"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := persisted(t, blob); !slices.Equal(got, []string{"pikachu", "bulbasaur"}) {
		t.Fatalf("unexpected persisted names %v", got)
	}
}

func TestToggleIsInvolution(t *testing.T) {
	blob := storage.NewMemoryStore()
	_ = blob.Set(context.Background(), testKey, []byte(`["eevee"]`))
	store := Load(context.Background(), blob, testKey, zap.NewNop())
	ctx := context.Background()

	for _, name := range []string{"eevee", "pikachu"} {
		before := store.IsCaught(name)
		if _, err := store.Toggle(ctx, name); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.IsCaught(name) == before {
			t.Fatalf("expected first toggle of %q to flip membership", name)
		}
		if _, err := store.Toggle(ctx, name); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.IsCaught(name) != before {
			t.Fatalf("expected double toggle of %q to restore membership", name)
		}
	}
}

func TestTogglePersistsExactSetInInsertionOrder(t *testing.T) {
	blob := storage.NewMemoryStore()
	store := Load(context.Background(), blob, testKey, zap.NewNop())
	ctx := context.Background()

	steps := []struct {
		name   string
		caught bool
		want   []string
	}{
		{"bulbasaur", true, []string{"bulbasaur"}},
		{"charmander", true, []string{"bulbasaur", "charmander"}},
		{"squirtle", true, []string{"bulbasaur", "charmander", "squirtle"}},
		{"charmander", false, []string{"bulbasaur", "squirtle"}},
		{"charmander", true, []string{"bulbasaur", "squirtle", "charmander"}},
		{"bulbasaur", false, []string{"squirtle", "charmander"}},
		{"squirtle", false, []string{"charmander"}},
		{"charmander", false, []string{}},
	}

	for i, step := range steps {
		caught, err := store.Toggle(ctx, step.name)
		if err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		if caught != step.caught {
			t.Fatalf("step %d: expected caught=%v, got %v", i, step.caught, caught)
		}
		if got := persisted(t, blob); !slices.Equal(got, step.want) {
			t.Fatalf("step %d: persisted %v, want %v", i, got, step.want)
		}
		if got := store.Names(); !slices.Equal(got, step.want) {
			t.Fatalf("step %d: names %v, want %v", i, got, step.want)
		}
	}

	data, _, _ := blob.Get(ctx, testKey)
	if string(data) != "[]" {
		t.Fatalf("expected empty set to persist as [], got %s", data)
	}
}

func TestReloadSeesPersistedToggles(t *testing.T) {
	blob := storage.NewMemoryStore()
	ctx := context.Background()

	first := Load(ctx, blob, testKey, zap.NewNop())
	_, _ = first.Toggle(ctx, "mew")
	_, _ = first.Toggle(ctx, "mewtwo")

	second := Load(ctx, blob, testKey, zap.NewNop())
	if !second.IsCaught("mew") || !second.IsCaught("mewtwo") || second.Len() != 2 {
		t.Fatalf("expected reloaded set to match, got %v", second.Names())
	}
}

func TestToggleWriteFailureKeepsMutation(t *testing.T) {
	blob := &failingBlob{setErr: stderrors.New("read-only filesystem")}
	store := Load(context.Background(), blob, testKey, zap.NewNop())

	caught, err := store.Toggle(context.Background(), "snorlax")
	if !caught || !store.IsCaught("snorlax") {
		t.Fatalf("expected in-memory toggle to apply despite write failure")
	}
	var storageErr *apperrors.StorageError
	if !stderrors.As(err, &storageErr) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if blob.sets != 1 {
		t.Fatalf("expected exactly one write attempt, got %d", blob.sets)
	}
}

func TestNamesReturnsCopy(t *testing.T) {
	store := Load(context.Background(), storage.NewMemoryStore(), testKey, zap.NewNop())
	_, _ = store.Toggle(context.Background(), "ditto")

	names := store.Names()
	names[0] = "changed"
	if !store.IsCaught("ditto") || store.Names()[0] != "ditto" {
		t.Fatalf("Names must not expose internal state")
	}
}

package viewmodel

import (
	"context"

	"go.uber.org/zap"

	"github.com/kapu/pokedex-go/internal/domain"
	"github.com/kapu/pokedex-go/internal/service/search"
)

// ListRequest describes a member load started by Select.
type ListRequest struct {
	Generation uint64
	Ref        string
}

// Empty reports whether the request carries nothing to fetch.
func (r ListRequest) Empty() bool {
	return r.Ref == ""
}

type ListResult struct {
	Generation uint64
	Ref        string
	Members    []domain.MemberSummary
	Err        error
}

// List is the state of the member list screen.
type List struct {
	caught CaughtSet
	logger *zap.Logger

	state       LoadState
	selectedRef string
	searchText  string
	onlyCaught  bool
	members     []domain.MemberSummary
	generation  uint64
}

func NewList(caught CaughtSet, logger *zap.Logger) *List {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &List{
		caught: caught,
		logger: logger,
		state:  StateIdle,
	}
}

// Select changes the category. An empty ref clears the list and returns an
// empty request; any in-flight load is invalidated either way.
func (l *List) Select(ref string) ListRequest {
	l.generation++
	l.selectedRef = ref
	l.members = nil

	if ref == "" {
		l.state = StateIdle
		return ListRequest{}
	}
	l.state = StateLoading
	return ListRequest{Generation: l.generation, Ref: ref}
}

// Fetch performs the request. It reads no List state and may run on any
// goroutine.
func (l *List) Fetch(ctx context.Context, catalog Catalog, req ListRequest) ListResult {
	members, err := catalog.ListMembers(ctx, req.Ref)
	return ListResult{
		Generation: req.Generation,
		Ref:        req.Ref,
		Members:    members,
		Err:        err,
	}
}

// Apply stores result if it belongs to the current selection. A failed
// load leaves the list empty and idle; the error is logged only.
func (l *List) Apply(result ListResult) bool {
	if result.Generation != l.generation || l.state != StateLoading {
		l.logger.Debug("Discarding stale member list",
			zap.String("ref", result.Ref),
			zap.Uint64("generation", result.Generation),
			zap.Uint64("current", l.generation),
		)
		return false
	}

	if result.Err != nil {
		l.logger.Error("Failed to load members",
			zap.String("ref", result.Ref),
			zap.Error(result.Err),
		)
		l.members = nil
		l.state = StateIdle
		return true
	}

	l.members = result.Members
	l.state = StateLoaded
	l.logger.Debug("Member list loaded",
		zap.String("ref", result.Ref),
		zap.Int("count", len(result.Members)),
	)
	return true
}

// SelectAndLoad runs Select, Fetch and Apply in sequence.
func (l *List) SelectAndLoad(ctx context.Context, catalog Catalog, ref string) {
	req := l.Select(ref)
	if req.Empty() {
		return
	}
	l.Apply(l.Fetch(ctx, catalog, req))
}

func (l *List) SetSearchText(text string) {
	l.searchText = text
}

func (l *List) SetOnlyCaught(only bool) {
	l.onlyCaught = only
}

func (l *List) State() LoadState { return l.state }

func (l *List) SelectedRef() string { return l.selectedRef }

func (l *List) SearchText() string { return l.searchText }

func (l *List) OnlyCaught() bool { return l.onlyCaught }

func (l *List) Loading() bool { return l.state == StateLoading }

// Members returns the unfiltered list for the selected category.
func (l *List) Members() []domain.MemberSummary { return l.members }

// Filtered is recomputed from the members, search text, only-caught flag
// and the current caught-set on every call.
func (l *List) Filtered() []domain.MemberSummary {
	return search.Filter(l.members, l.searchText, l.onlyCaught, l.caught)
}

// Suggestions offers near matches for the search text when the filtered
// list is empty but members are loaded.
func (l *List) Suggestions(limit int) []string {
	if l.state != StateLoaded || l.searchText == "" || len(l.Filtered()) > 0 {
		return nil
	}
	return search.Suggest(l.members, l.searchText, limit)
}

// CategoryName returns the name of the selected category, or "" when
// nothing is selected or the ref is unknown.
func (l *List) CategoryName(categories []domain.Category) string {
	if l.selectedRef == "" {
		return ""
	}
	if category := domain.FindCategoryByURL(categories, l.selectedRef); category != nil {
		return category.Name
	}
	return ""
}

// Package viewmodel holds the presentation state of the list and detail
// screens. Each view-model is owned by a single goroutine (the UI loop);
// only Fetch may run elsewhere, and it touches no view-model state.
//
// Every load is tagged with a generation number. A result is applied only
// when its generation is still current, so a slow response for an earlier
// selection can never overwrite a later one.
package viewmodel

import (
	"context"

	"github.com/kapu/pokedex-go/internal/domain"
)

// Catalog is the read-only remote catalog.
type Catalog interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListMembers(ctx context.Context, ref string) ([]domain.MemberSummary, error)
	GetMemberDetail(ctx context.Context, name string) (*domain.MemberDetail, error)
}

// CaughtSet is the subset of caught.Store the view-models need.
type CaughtSet interface {
	IsCaught(name string) bool
	Toggle(ctx context.Context, name string) (bool, error)
}

type LoadState int

const (
	StateIdle LoadState = iota
	StateLoading
	StateLoaded
)

func (s LoadState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

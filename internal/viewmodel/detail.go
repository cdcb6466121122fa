package viewmodel

import (
	"context"

	"go.uber.org/zap"

	"github.com/kapu/pokedex-go/internal/domain"
	apperrors "github.com/kapu/pokedex-go/pkg/errors"
)

type DetailRequest struct {
	Generation uint64
	Name       string
}

type DetailResult struct {
	Generation uint64
	Name       string
	Detail     *domain.MemberDetail
	Err        error
}

// DetailState mirrors LoadState for the detail screen: NotLoaded, Loading
// or Loaded.
type DetailState int

const (
	DetailNotLoaded DetailState = iota
	DetailLoading
	DetailLoaded
)

// Detail is the state of the member detail screen.
type Detail struct {
	caught CaughtSet
	logger *zap.Logger

	state      DetailState
	name       string
	detail     *domain.MemberDetail
	err        error
	generation uint64
}

func NewDetail(caught CaughtSet, logger *zap.Logger) *Detail {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detail{caught: caught, logger: logger}
}

// Activate starts showing name. Whatever was shown before is dropped at
// once so a previous member never lingers while the new one loads.
func (d *Detail) Activate(name string) DetailRequest {
	d.generation++
	d.name = name
	d.detail = nil
	d.err = nil
	d.state = DetailLoading
	return DetailRequest{Generation: d.generation, Name: name}
}

// Reset leaves the detail screen; pending results are discarded.
func (d *Detail) Reset() {
	d.generation++
	d.name = ""
	d.detail = nil
	d.err = nil
	d.state = DetailNotLoaded
}

// Fetch performs the request without touching Detail state.
func (d *Detail) Fetch(ctx context.Context, catalog Catalog, req DetailRequest) DetailResult {
	detail, err := catalog.GetMemberDetail(ctx, req.Name)
	return DetailResult{
		Generation: req.Generation,
		Name:       req.Name,
		Detail:     detail,
		Err:        err,
	}
}

func (d *Detail) Apply(result DetailResult) bool {
	if result.Generation != d.generation || d.state != DetailLoading {
		d.logger.Debug("Discarding stale member detail",
			zap.String("name", result.Name),
			zap.Uint64("generation", result.Generation),
			zap.Uint64("current", d.generation),
		)
		return false
	}

	if result.Err != nil || result.Detail == nil {
		d.err = result.Err
		d.detail = nil
		d.state = DetailNotLoaded
		d.logger.Error("Failed to load member detail",
			zap.String("name", result.Name),
			zap.String("code", apperrors.CodeOf(result.Err)),
			zap.Error(result.Err),
		)
		return true
	}

	d.detail = result.Detail
	d.state = DetailLoaded
	return true
}

// ActivateAndLoad runs Activate, Fetch and Apply in sequence.
func (d *Detail) ActivateAndLoad(ctx context.Context, catalog Catalog, name string) {
	req := d.Activate(name)
	d.Apply(d.Fetch(ctx, catalog, req))
}

func (d *Detail) State() DetailState { return d.state }

// Name is the member currently shown or being loaded.
func (d *Detail) Name() string { return d.name }

// Detail returns the loaded detail; ok is false unless the state is
// Loaded.
func (d *Detail) Detail() (*domain.MemberDetail, bool) {
	if d.state != DetailLoaded {
		return nil, false
	}
	return d.detail, true
}

// Err is the error of the last failed load.
func (d *Detail) Err() error { return d.err }

func (d *Detail) VisibleAbilities() []domain.Ability {
	if d.state != DetailLoaded {
		return nil
	}
	return d.detail.VisibleAbilities()
}

func (d *Detail) IsCaught() bool {
	if d.caught == nil || d.name == "" {
		return false
	}
	return d.caught.IsCaught(d.name)
}

// ToggleCaught flips the shown member in the caught-set.
func (d *Detail) ToggleCaught(ctx context.Context) (bool, error) {
	if d.name == "" {
		return false, apperrors.NewValidationError("no member selected", "name", "")
	}
	if d.caught == nil {
		return false, apperrors.NewValidationError("caught set unavailable", "caught", nil)
	}
	return d.caught.Toggle(ctx, d.name)
}

package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kapu/pokedex-go/internal/domain"
	"github.com/kapu/pokedex-go/internal/viewmodel"
)

// categoriesLoadedMsg carries the result of a type list request.
type categoriesLoadedMsg struct {
	categories []domain.Category
	err        error
}

// membersLoadedMsg carries a member list result back to the UI loop,
// where the view-model decides whether it is still current.
type membersLoadedMsg struct {
	result viewmodel.ListResult
}

type detailLoadedMsg struct {
	result viewmodel.DetailResult
}

// noticeFadeMsg clears the status-bar notice it was scheduled for. A
// newer notice has a different seq and survives.
type noticeFadeMsg struct {
	seq int
}

func loadCategories(ctx context.Context, catalog viewmodel.Catalog) tea.Cmd {
	return func() tea.Msg {
		categories, err := catalog.ListCategories(ctx)
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

func loadMembers(ctx context.Context, list *viewmodel.List, catalog viewmodel.Catalog, req viewmodel.ListRequest) tea.Cmd {
	return func() tea.Msg {
		return membersLoadedMsg{result: list.Fetch(ctx, catalog, req)}
	}
}

func loadDetail(ctx context.Context, detail *viewmodel.Detail, catalog viewmodel.Catalog, req viewmodel.DetailRequest) tea.Cmd {
	return func() tea.Msg {
		return detailLoadedMsg{result: detail.Fetch(ctx, catalog, req)}
	}
}

func fadeNotice(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return noticeFadeMsg{seq: seq}
	})
}

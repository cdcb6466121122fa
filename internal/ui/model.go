package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/kapu/pokedex-go/internal/adapter"
	"github.com/kapu/pokedex-go/internal/constants"
	"github.com/kapu/pokedex-go/internal/domain"
	"github.com/kapu/pokedex-go/internal/viewmodel"
	apperrors "github.com/kapu/pokedex-go/pkg/errors"
)

// Screen identifies the visible page.
type Screen int

const (
	ScreenList Screen = iota
	ScreenDetail
)

// FocusRegion identifies where keystrokes on the list screen go.
type FocusRegion int

const (
	// FocusList means navigation keys move the member cursor.
	FocusList FocusRegion = iota
	// FocusSearch means keystrokes edit the search text.
	FocusSearch
	// FocusSelector means the type selector overlay is open.
	FocusSelector
)

// chromeHeight is the number of lines around the member rows: title,
// header, search, blank, status bar and help.
const chromeHeight = 7

// Options configures a Model.
type Options struct {
	Catalog    viewmodel.Catalog
	Caught     viewmodel.CaughtSet
	Categories []domain.Category
	Logger     *zap.Logger

	// NoticeFade is how long status-bar notices stay visible. Zero uses
	// the default.
	NoticeFade time.Duration
}

// Model is the top-level bubbletea model of the Pokédex.
type Model struct {
	ctx       context.Context
	catalog   viewmodel.Catalog
	caught    viewmodel.CaughtSet
	logger    *zap.Logger
	formatter *adapter.Formatter

	keys   KeyMap
	theme  Theme
	styles styles

	list   *viewmodel.List
	detail *viewmodel.Detail

	categories        []domain.Category
	categoriesLoading bool

	screen         Screen
	focus          FocusRegion
	cursor         int
	offset         int
	selectorCursor int

	search  textinput.Model
	spinner spinner.Model
	help    help.Model

	notice      string
	noticeError bool
	noticeSeq   int
	noticeFade  time.Duration

	width  int
	height int
}

func NewModel(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fade := opts.NoticeFade
	if fade <= 0 {
		fade = constants.UIConfig.NoticeFade
	}

	search := textinput.New()
	search.Placeholder = "Search by name"
	search.Prompt = "/ "

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	model := Model{
		ctx:        ctx,
		catalog:    opts.Catalog,
		caught:     opts.Caught,
		logger:     logger,
		formatter:  adapter.NewFormatter(constants.UIConfig.MaxNameWidth),
		keys:       DefaultKeyMap,
		theme:      DefaultTheme,
		styles:     newStyles(DefaultTheme),
		list:       viewmodel.NewList(opts.Caught, logger),
		detail:     viewmodel.NewDetail(opts.Caught, logger),
		categories: opts.Categories,
		search:     search,
		spinner:    spin,
		help:       help.New(),
		noticeFade: fade,
	}
	// Init fetches the type list when none was bootstrapped.
	model.categoriesLoading = len(opts.Categories) == 0
	return model
}

// Init implements tea.Model. The type list is fetched here only when it
// was not provided up front.
func (model Model) Init() tea.Cmd {
	if !model.categoriesLoading {
		return nil
	}
	return tea.Batch(loadCategories(model.ctx, model.catalog), model.spinner.Tick)
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.help.Width = message.Width
		model.search.Width = max(message.Width-4, 10)
		model.ensureCursorVisible()

	case categoriesLoadedMsg:
		model.categoriesLoading = false
		if message.err != nil {
			model.logger.Error("Failed to load types", zap.Error(message.err))
			return model, nil
		}
		model.categories = message.categories
		model.logger.Info("Types loaded", zap.Int("count", len(message.categories)))

	case membersLoadedMsg:
		if model.list.Apply(message.result) {
			model.cursor = 0
			model.offset = 0
		}

	case detailLoadedMsg:
		model.detail.Apply(message.result)

	case noticeFadeMsg:
		if message.seq == model.noticeSeq {
			model.notice = ""
			model.noticeError = false
		}

	case spinner.TickMsg:
		if !model.loading() {
			return model, nil
		}
		var cmd tea.Cmd
		model.spinner, cmd = model.spinner.Update(message)
		return model, cmd
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}

	if model.screen == ScreenDetail {
		return model.handleDetailKeys(message)
	}
	switch model.focus {
	case FocusSearch:
		return model.handleSearchKeys(message)
	case FocusSelector:
		return model.handleSelectorKeys(message)
	}
	return model.handleListKeys(message)
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)

	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)

	case key.Matches(message, model.keys.SelectType):
		if len(model.categories) == 0 {
			return model, model.setNotice("No types loaded yet. Press r to retry.", true)
		}
		model.focus = FocusSelector
		model.selectorCursor = 0
		for i, category := range model.categories {
			if category.URL == model.list.SelectedRef() {
				model.selectorCursor = i + 1
			}
		}

	case key.Matches(message, model.keys.Search):
		model.focus = FocusSearch
		return model, model.search.Focus()

	case key.Matches(message, model.keys.OnlyCaught):
		model.list.SetOnlyCaught(!model.list.OnlyCaught())
		model.clampCursor()

	case key.Matches(message, model.keys.Toggle):
		filtered := model.list.Filtered()
		if model.cursor >= len(filtered) {
			return model, nil
		}
		cmd := model.toggle(filtered[model.cursor].Name)
		model.clampCursor()
		return model, cmd

	case key.Matches(message, model.keys.Open):
		filtered := model.list.Filtered()
		if model.cursor >= len(filtered) {
			return model, nil
		}
		req := model.detail.Activate(filtered[model.cursor].Name)
		model.screen = ScreenDetail
		return model, tea.Batch(loadDetail(model.ctx, model.detail, model.catalog, req), model.spinner.Tick)

	case key.Matches(message, model.keys.Retry):
		if model.categoriesLoading {
			return model, nil
		}
		model.categoriesLoading = true
		return model, tea.Batch(loadCategories(model.ctx, model.catalog), model.spinner.Tick)

	case key.Matches(message, model.keys.Help):
		model.help.ShowAll = !model.help.ShowAll

	case key.Matches(message, model.keys.Back):
		if model.list.SearchText() != "" {
			model.search.SetValue("")
			model.list.SetSearchText("")
			model.clampCursor()
		}
	}
	return model, nil
}

func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc, tea.KeyEnter:
		model.focus = FocusList
		model.search.Blur()
		return model, nil
	}

	var cmd tea.Cmd
	model.search, cmd = model.search.Update(message)
	model.list.SetSearchText(model.search.Value())
	model.cursor = 0
	model.offset = 0
	return model, cmd
}

func (model Model) handleSelectorKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := len(model.categories) + 1

	switch {
	case key.Matches(message, model.keys.Up):
		if model.selectorCursor > 0 {
			model.selectorCursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.selectorCursor < options-1 {
			model.selectorCursor++
		}

	case key.Matches(message, model.keys.Open):
		model.focus = FocusList
		ref := ""
		if model.selectorCursor > 0 {
			ref = model.categories[model.selectorCursor-1].URL
		}
		return model, model.selectCategory(ref)

	case key.Matches(message, model.keys.Back), key.Matches(message, model.keys.SelectType):
		model.focus = FocusList
	}
	return model, nil
}

func (model Model) handleDetailKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Back):
		model.detail.Reset()
		model.screen = ScreenList
		model.clampCursor()

	case key.Matches(message, model.keys.Toggle):
		if model.detail.Name() == "" || model.caught == nil {
			return model, nil
		}
		caught, err := model.detail.ToggleCaught(model.ctx)
		return model, model.reportToggle(model.detail.Name(), caught, err)

	case key.Matches(message, model.keys.Help):
		model.help.ShowAll = !model.help.ShowAll
	}
	return model, nil
}

// selectCategory switches the list to ref and starts loading it.
func (model *Model) selectCategory(ref string) tea.Cmd {
	req := model.list.Select(ref)
	model.cursor = 0
	model.offset = 0
	if req.Empty() {
		return nil
	}
	return tea.Batch(loadMembers(model.ctx, model.list, model.catalog, req), model.spinner.Tick)
}

// toggle flips name in the caught-set. Storage failures keep the
// in-memory change and are surfaced in the status bar.
func (model *Model) toggle(name string) tea.Cmd {
	if model.caught == nil {
		return nil
	}
	caught, err := model.caught.Toggle(model.ctx, name)
	return model.reportToggle(name, caught, err)
}

func (model *Model) reportToggle(name string, caught bool, err error) tea.Cmd {
	if err != nil {
		model.logger.Warn("Caught set not saved",
			zap.String("name", name),
			zap.String("code", apperrors.CodeOf(err)),
			zap.Error(err),
		)
		return model.setNotice("Could not save caught Pokémon: "+err.Error(), true)
	}
	return model.setNotice(model.formatter.FormatToggle(name, caught), false)
}

func (model *Model) setNotice(text string, isError bool) tea.Cmd {
	model.noticeSeq++
	model.notice = text
	model.noticeError = isError
	return fadeNotice(model.noticeFade, model.noticeSeq)
}

func (model *Model) moveCursor(delta int) {
	model.cursor += delta
	model.clampCursor()
}

func (model *Model) clampCursor() {
	count := len(model.list.Filtered())
	if model.cursor >= count {
		model.cursor = count - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	model.ensureCursorVisible()
}

func (model *Model) ensureCursorVisible() {
	rows := model.visibleRows()
	if model.cursor < model.offset {
		model.offset = model.cursor
	}
	if model.cursor >= model.offset+rows {
		model.offset = model.cursor - rows + 1
	}
	if model.offset < 0 {
		model.offset = 0
	}
}

func (model Model) visibleRows() int {
	if model.height <= 0 {
		return 20
	}
	return max(model.height-chromeHeight, 1)
}

func (model Model) loading() bool {
	return model.categoriesLoading ||
		model.list.Loading() ||
		(model.screen == ScreenDetail && model.detail.State() == viewmodel.DetailLoading)
}

// Screen reports the visible page.
func (model Model) Screen() Screen { return model.screen }

// Focus reports where list-screen keystrokes go.
func (model Model) Focus() FocusRegion { return model.focus }

// Notice returns the status-bar text and whether it reports an error.
func (model Model) Notice() (string, bool) { return model.notice, model.noticeError }

// Categories returns the loaded type list.
func (model Model) Categories() []domain.Category { return model.categories }

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kapu/pokedex-go/internal/adapter"
	"github.com/kapu/pokedex-go/internal/constants"
	"github.com/kapu/pokedex-go/internal/util"
	"github.com/kapu/pokedex-go/internal/viewmodel"
)

// View implements tea.Model.
func (model Model) View() string {
	var body string
	if model.screen == ScreenDetail {
		body = model.renderDetail()
	} else {
		body = model.renderList()
	}

	sections := []string{
		model.styles.title.Render("Pokédex"),
		body,
		model.renderStatusBar(),
		model.help.View(model.keys),
	}
	return model.truncateLines(strings.Join(sections, "\n"))
}

func (model Model) renderList() string {
	var b strings.Builder

	filtered := model.list.Filtered()
	header := model.formatter.FormatCategoryHeader(
		model.list.CategoryName(model.categories),
		len(filtered),
		len(model.list.Members()),
	)
	b.WriteString(model.styles.header.Render(header))
	if model.list.OnlyCaught() {
		b.WriteString("  ")
		b.WriteString(model.styles.badge.Render("[only caught]"))
	}
	b.WriteString("\n")

	if model.focus == FocusSearch || model.list.SearchText() != "" {
		b.WriteString(model.search.View())
	} else {
		b.WriteString(model.styles.faint.Render("Press / to search"))
	}
	b.WriteString("\n\n")

	if model.focus == FocusSelector {
		b.WriteString(model.renderSelector())
		return b.String()
	}

	switch model.list.State() {
	case viewmodel.StateIdle:
		if model.categoriesLoading {
			b.WriteString(model.spinner.View() + " Loading types...")
		} else if len(model.categories) == 0 {
			b.WriteString(model.styles.faint.Render("No types available. Press r to retry."))
		} else {
			b.WriteString(model.styles.faint.Render("Select a type with t to browse Pokémon."))
		}
		return b.String()

	case viewmodel.StateLoading:
		b.WriteString(model.spinner.View() + " Loading Pokémon...")
		return b.String()
	}

	if len(filtered) == 0 {
		b.WriteString(model.styles.faint.Render(
			model.formatter.FormatEmpty(model.list.Suggestions(constants.UIConfig.SuggestionLimit)),
		))
		return b.String()
	}

	end := min(model.offset+model.visibleRows(), len(filtered))
	rows := make([]string, 0, end-model.offset)
	for i := model.offset; i < end; i++ {
		rows = append(rows, model.renderRow(filtered[i].Name, i == model.cursor))
	}
	b.WriteString(strings.Join(rows, "\n"))
	return b.String()
}

func (model Model) renderRow(name string, selected bool) string {
	caught := model.caught != nil && model.caught.IsCaught(name)

	nameCell := lipgloss.NewStyle().Width(constants.UIConfig.MaxNameWidth + 4).
		Render(model.formatter.DisplayName(name))

	badge := strings.Repeat(" ", len(adapter.StatusCaught))
	if caught {
		badge = model.styles.badge.Render(model.formatter.Status(true))
	}

	action := model.styles.catch.Render("[" + model.formatter.Action(caught) + "]")
	if caught {
		action = model.styles.release.Render("[" + model.formatter.Action(caught) + "]")
	}

	marker := "  "
	if selected {
		marker = "> "
	}
	row := marker + nameCell + " " + badge + "  " + action
	if selected {
		return model.styles.selected.Render(row)
	}
	return model.styles.normal.Render(row)
}

func (model Model) renderSelector() string {
	lines := make([]string, 0, len(model.categories)+1)
	options := append([]string{"(no type)"}, model.categoryLabels()...)

	// Keep the selector within the visible rows around its cursor.
	rows := model.visibleRows()
	start := 0
	if model.selectorCursor >= rows {
		start = model.selectorCursor - rows + 1
	}
	end := min(start+rows, len(options))

	for i := start; i < end; i++ {
		line := "  " + options[i]
		if i == model.selectorCursor {
			line = model.styles.selected.Render("> " + options[i])
		}
		lines = append(lines, line)
	}
	return model.styles.selector.Render(strings.Join(lines, "\n"))
}

func (model Model) categoryLabels() []string {
	labels := make([]string, len(model.categories))
	for i, category := range model.categories {
		labels[i] = util.Titleize(category.Name)
	}
	return labels
}

func (model Model) renderDetail() string {
	name := model.detail.Name()
	header := model.styles.header.Render(model.formatter.DisplayName(name))

	switch model.detail.State() {
	case viewmodel.DetailLoading:
		return header + "\n\n" + model.spinner.View() + " Loading details..."
	case viewmodel.DetailNotLoaded:
		return header + "\n\n" + model.styles.faint.Render("Details unavailable. Press esc to go back.")
	}

	detail, _ := model.detail.Detail()
	caught := model.detail.IsCaught()
	table := model.styles.detailBox.Render(model.formatter.FormatDetail(detail, caught))

	actionStyle := model.styles.catch
	if caught {
		actionStyle = model.styles.release
	}
	action := actionStyle.Render(fmt.Sprintf("[space] %s", model.formatter.Action(caught)))

	return header + "\n\n" + table + "\n" + action
}

func (model Model) renderStatusBar() string {
	if model.notice == "" {
		caughtCount := ""
		if counter, ok := model.caught.(interface{ Len() int }); ok {
			caughtCount = fmt.Sprintf("%d caught", counter.Len())
		}
		return model.styles.faint.Render(caughtCount)
	}
	if model.noticeError {
		return model.styles.err.Render(model.notice)
	}
	return model.styles.notice.Render(model.notice)
}

// truncateLines clips every line to the terminal width.
func (model Model) truncateLines(view string) string {
	if model.width <= 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	for i, line := range lines {
		if ansi.StringWidth(line) > model.width {
			lines[i] = ansi.Truncate(line, model.width, "…")
		}
	}
	return strings.Join(lines, "\n")
}

package adapter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kapu/pokedex-go/internal/constants"
	"github.com/kapu/pokedex-go/internal/domain"
	"github.com/kapu/pokedex-go/internal/util"
)

const (
	StatusCaught   = "Caught"
	StatusUncaught = "-"
	ActionCatch    = "Catch"
	ActionRelease  = "Release"
)

// Formatter renders domain values as plain text for the terminal views.
type Formatter struct {
	maxNameWidth int
}

// NewFormatter creates a Formatter. A non-positive width uses the default.
func NewFormatter(maxNameWidth int) *Formatter {
	if maxNameWidth <= 0 {
		maxNameWidth = constants.UIConfig.MaxNameWidth
	}
	return &Formatter{maxNameWidth: maxNameWidth}
}

// DisplayName turns an API slug into a readable, width-limited name.
func (f *Formatter) DisplayName(name string) string {
	return util.TruncateString(util.Titleize(name), f.maxNameWidth)
}

// Status is the caught badge text.
func (f *Formatter) Status(caught bool) string {
	if caught {
		return StatusCaught
	}
	return StatusUncaught
}

// Action is the label of the catch/release control.
func (f *Formatter) Action(caught bool) string {
	if caught {
		return ActionRelease
	}
	return ActionCatch
}

type detailView struct {
	Name      string
	Weight    float64
	Height    float64
	ImageURL  string
	Abilities []domain.Ability
	Status    string
}

// FormatDetail renders the detail table. Only visible abilities are listed.
func (f *Formatter) FormatDetail(detail *domain.MemberDetail, caught bool) string {
	if detail == nil {
		return "No details available."
	}

	text, err := executeFormatterTemplate("detail.tmpl", detailView{
		Name:      detail.Name,
		Weight:    detail.Weight,
		Height:    detail.Height,
		ImageURL:  detail.ImageURL,
		Abilities: detail.VisibleAbilities(),
		Status:    f.Status(caught),
	})
	if err != nil {
		return f.FormatError(err.Error())
	}
	return text
}

// FormatCategoryHeader renders the list heading for the selected type.
func (f *Formatter) FormatCategoryHeader(categoryName string, shown, total int) string {
	if categoryName == "" {
		return "Select a type"
	}
	if shown == total {
		return fmt.Sprintf("%s (%d)", util.Titleize(categoryName), total)
	}
	return fmt.Sprintf("%s (%d of %d)", util.Titleize(categoryName), shown, total)
}

// FormatEmpty renders the empty-list message with optional suggestions.
func (f *Formatter) FormatEmpty(suggestions []string) string {
	if len(suggestions) == 0 {
		return "No Pokémon found."
	}
	names := make([]string, len(suggestions))
	for i, s := range suggestions {
		names[i] = util.Titleize(s)
	}
	return fmt.Sprintf("No Pokémon found. Did you mean: %s?", strings.Join(names, ", "))
}

// FormatToggle renders the status-bar notice after a toggle.
func (f *Formatter) FormatToggle(name string, caught bool) string {
	if caught {
		return fmt.Sprintf("Caught %s!", util.Titleize(name))
	}
	return fmt.Sprintf("Released %s.", util.Titleize(name))
}

// FormatError formats an error notice.
func (f *Formatter) FormatError(message string) string {
	return fmt.Sprintf("Error: %s", message)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

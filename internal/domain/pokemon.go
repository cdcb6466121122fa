package domain

// Category is a Pokémon type. URL is the opaque reference used to list
// its members.
type Category struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// MemberSummary is a single Pokémon as listed under a type.
type MemberSummary struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Ability struct {
	Name     string `json:"name"`
	IsHidden bool   `json:"isHidden"`
}

type MemberDetail struct {
	Name      string    `json:"name"`
	Weight    float64   `json:"weight"`
	Height    float64   `json:"height"`
	ImageURL  string    `json:"imageUrl"`
	Abilities []Ability `json:"abilities"`
}

// VisibleAbilities returns the non-hidden abilities in API order.
func (d *MemberDetail) VisibleAbilities() []Ability {
	if d == nil {
		return nil
	}
	visible := make([]Ability, 0, len(d.Abilities))
	for _, ability := range d.Abilities {
		if !ability.IsHidden {
			visible = append(visible, ability)
		}
	}
	return visible
}

// MemberNames extracts names in list order.
func MemberNames(members []MemberSummary) []string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	return names
}

// FindCategoryByURL returns the category whose reference equals url.
func FindCategoryByURL(categories []Category, url string) *Category {
	for i := range categories {
		if categories[i].URL == url {
			return &categories[i]
		}
	}
	return nil
}

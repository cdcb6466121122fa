package domain

// Raw PokéAPI response shapes. Required fields are pointers so
// that a decoded body with a missing field can be told apart from an
// empty one.

type NamedAPIResourceRaw struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TypeListRaw is the body of GET /type.
type TypeListRaw struct {
	Count   int                    `json:"count"`
	Results *[]NamedAPIResourceRaw `json:"results"`
}

type TypePokemonRaw struct {
	Slot    int                  `json:"slot"`
	Pokemon *NamedAPIResourceRaw `json:"pokemon"`
}

// TypeDetailRaw is the body of GET /type/{id}.
type TypeDetailRaw struct {
	ID      int               `json:"id"`
	Name    string            `json:"name"`
	Pokemon *[]TypePokemonRaw `json:"pokemon"`
}

type PokemonAbilityRaw struct {
	Ability  *NamedAPIResourceRaw `json:"ability"`
	IsHidden bool                 `json:"is_hidden"`
	Slot     int                  `json:"slot"`
}

type OfficialArtworkRaw struct {
	FrontDefault *string `json:"front_default"`
}

type SpritesOtherRaw struct {
	OfficialArtwork *OfficialArtworkRaw `json:"official-artwork,omitempty"`
}

type SpritesRaw struct {
	FrontDefault *string          `json:"front_default"`
	Other        *SpritesOtherRaw `json:"other,omitempty"`
}

// PokemonRaw is the body of GET /pokemon/{name}.
type PokemonRaw struct {
	ID        int                 `json:"id"`
	Name      string              `json:"name"`
	Weight    float64             `json:"weight"`
	Height    float64             `json:"height"`
	Sprites   *SpritesRaw         `json:"sprites"`
	Abilities []PokemonAbilityRaw `json:"abilities"`
}

// ImageURL prefers the official artwork and falls back to the default
// front sprite.
func (p *PokemonRaw) ImageURL() string {
	if p == nil || p.Sprites == nil {
		return ""
	}
	if other := p.Sprites.Other; other != nil && other.OfficialArtwork != nil {
		if art := other.OfficialArtwork.FrontDefault; art != nil && *art != "" {
			return *art
		}
	}
	if p.Sprites.FrontDefault != nil {
		return *p.Sprites.FrontDefault
	}
	return ""
}

// ToDetail converts the raw body into a MemberDetail, skipping ability
// entries without a name.
func (p *PokemonRaw) ToDetail() *MemberDetail {
	abilities := make([]Ability, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		if a.Ability == nil || a.Ability.Name == "" {
			continue
		}
		abilities = append(abilities, Ability{Name: a.Ability.Name, IsHidden: a.IsHidden})
	}
	return &MemberDetail{
		Name:      p.Name,
		Weight:    p.Weight,
		Height:    p.Height,
		ImageURL:  p.ImageURL(),
		Abilities: abilities,
	}
}

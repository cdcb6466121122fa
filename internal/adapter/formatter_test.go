package adapter

import (
	"strings"
	"testing"

	"github.com/kapu/pokedex-go/internal/domain"
)

func TestFormatDetail(t *testing.T) {
	f := NewFormatter(0)
	detail := &domain.MemberDetail{
		Name:     "mr-mime",
		Weight:   545,
		Height:   13,
		ImageURL: "https://img/122.png",
		Abilities: []domain.Ability{
			{Name: "soundproof"},
			{Name: "filter"},
			{Name: "technician", IsHidden: true},
		},
	}

	got := f.FormatDetail(detail, true)
	for _, want := range []string{
		"Name       Mr Mime",
		"Weight     545",
		"Height     13",
		"Image      https://img/122.png",
		"Abilities  Soundproof, Filter",
		"Status     Caught",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Technician") {
		t.Fatalf("hidden ability must not be shown:\n%s", got)
	}
}

func TestFormatDetailUncaughtWithoutExtras(t *testing.T) {
	got := NewFormatter(0).FormatDetail(&domain.MemberDetail{Name: "ditto", Weight: 4.5}, false)
	for _, want := range []string{"Weight     4.5", "Image      -", "Abilities  -", "Status     -"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}
	if NewFormatter(0).FormatDetail(nil, false) == "" {
		t.Fatalf("expected placeholder for nil detail")
	}
}

func TestStatusAndAction(t *testing.T) {
	f := NewFormatter(0)
	if f.Status(true) != "Caught" || f.Status(false) != "-" {
		t.Fatalf("unexpected status labels")
	}
	if f.Action(true) != "Release" || f.Action(false) != "Catch" {
		t.Fatalf("unexpected action labels")
	}
}

func TestDisplayNameTruncates(t *testing.T) {
	f := NewFormatter(5)
	if got := f.DisplayName("charmander"); got != "Charm..." {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestFormatEmpty(t *testing.T) {
	f := NewFormatter(0)
	if got := f.FormatEmpty(nil); got != "No Pokémon found." {
		t.Fatalf("unexpected message %q", got)
	}
	if got := f.FormatEmpty([]string{"psyduck", "mr-mime"}); got != "No Pokémon found. Did you mean: Psyduck, Mr Mime?" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestFormatCategoryHeader(t *testing.T) {
	f := NewFormatter(0)
	if got := f.FormatCategoryHeader("", 0, 0); got != "Select a type" {
		t.Fatalf("unexpected header %q", got)
	}
	if got := f.FormatCategoryHeader("fire", 3, 3); got != "Fire (3)" {
		t.Fatalf("unexpected header %q", got)
	}
	if got := f.FormatCategoryHeader("fire", 1, 3); got != "Fire (1 of 3)" {
		t.Fatalf("unexpected header %q", got)
	}
}

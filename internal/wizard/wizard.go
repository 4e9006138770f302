// Package wizard implements the character-creation flow: six steps over a
// list of template characters with filter highlighting.
package wizard

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/spec-kit/companion-service/internal/domain"
)

// Step is a position in the flow.
type Step int

const (
	StepStyle Step = iota
	StepBasicInfo
	StepCommunication
	StepCareer
	StepPersonality
	StepPreview
)

const (
	FirstStep = StepStyle
	LastStep  = StepPreview
)

var stepLabels = [...]string{"Choose Style", "Basic Info", "Communication", "Career", "Personality", "Final Preview"}

func (s Step) String() string {
	if s < FirstStep || s > LastStep {
		return "Step(" + strconv.Itoa(int(s)) + ")"
	}
	return stepLabels[s]
}

// Visual styles.
const (
	StyleRealistic = "realistic"
	StyleAnime     = "anime"
)

var (
	ErrNoSelection      = errors.New("no character selected")
	ErrUnknownCharacter = errors.New("unknown character")
	ErrUnknownFilter    = errors.New("unknown filter")
	ErrUnknownStyle     = errors.New("unknown style")
)

// FilterKeys lists the filterable attributes in display order.
var FilterKeys = []string{"age", "body", "ethnicity", "language", "relationship", "occupation", "hobbies", "personality"}

// Filters holds the current dropdown values. Empty values match everything.
type Filters struct {
	Age          string `json:"age"`
	Body         string `json:"body"`
	Ethnicity    string `json:"ethnicity"`
	Language     string `json:"language"`
	Relationship string `json:"relationship"`
	Occupation   string `json:"occupation"`
	Hobbies      string `json:"hobbies"`
	Personality  string `json:"personality"`
}

func (f *Filters) field(key string) *string {
	switch key {
	case "age":
		return &f.Age
	case "body":
		return &f.Body
	case "ethnicity":
		return &f.Ethnicity
	case "language":
		return &f.Language
	case "relationship":
		return &f.Relationship
	case "occupation":
		return &f.Occupation
	case "hobbies":
		return &f.Hobbies
	case "personality":
		return &f.Personality
	}
	return nil
}

// Entry is one character in the view.
type Entry struct {
	domain.Character
	Highlighted bool `json:"highlighted"`
	Selected    bool `json:"selected"`
}

// State is the serializable wizard state.
type State struct {
	Step     Step    `json:"step"`
	Style    string  `json:"style"`
	Selected *string `json:"selected"`
	Filters  Filters `json:"filters"`
}

// Wizard holds one visitor's progress through the flow.
type Wizard struct {
	step       Step
	style      string
	characters []domain.Character
	selected   *string
	filters    Filters
}

// New starts the flow with the first character selected.
func New(characters []domain.Character) *Wizard {
	w := &Wizard{style: StyleRealistic, characters: slices.Clone(characters)}
	if len(w.characters) > 0 {
		id := w.characters[0].ID
		w.selected = &id
	}
	return w
}

// Restore rebuilds a wizard from a saved state. Out-of-range steps are
// clamped and selections of unknown characters are dropped.
func Restore(characters []domain.Character, s State) *Wizard {
	w := &Wizard{
		step:       clamp(s.Step),
		style:      StyleRealistic,
		characters: slices.Clone(characters),
		filters:    s.Filters,
	}
	if s.Style == StyleAnime {
		w.style = StyleAnime
	}
	if s.Selected != nil {
		_ = w.Select(*s.Selected)
	}
	return w
}

// State snapshots the wizard.
func (w *Wizard) State() State {
	return State{Step: w.step, Style: w.style, Selected: w.selected, Filters: w.filters}
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Style() string { return w.style }

func (w *Wizard) Filters() Filters { return w.filters }

// Next advances one step. It refuses while nothing is selected.
func (w *Wizard) Next() error {
	if w.selected == nil {
		return ErrNoSelection
	}
	w.step = clamp(w.step + 1)
	return nil
}

// Previous goes back one step, stopping at the first.
func (w *Wizard) Previous() {
	w.step = clamp(w.step - 1)
}

// Select picks a known character.
func (w *Wizard) Select(id string) error {
	if !slices.ContainsFunc(w.characters, func(c domain.Character) bool { return c.ID == id }) {
		return ErrUnknownCharacter
	}
	w.selected = &id
	return nil
}

// Selected returns the selected character, or nil.
func (w *Wizard) Selected() *domain.Character {
	if w.selected == nil {
		return nil
	}
	for i := range w.characters {
		if w.characters[i].ID == *w.selected {
			c := w.characters[i]
			return &c
		}
	}
	return nil
}

// SetFilter changes one filter and clears the selection.
func (w *Wizard) SetFilter(key, value string) error {
	dst := w.filters.field(key)
	if dst == nil {
		return ErrUnknownFilter
	}
	*dst = value
	w.selected = nil
	return nil
}

// SetStyle picks the visual style.
func (w *Wizard) SetStyle(style string) error {
	if style != StyleRealistic && style != StyleAnime {
		return ErrUnknownStyle
	}
	w.style = style
	return nil
}

// Matches reports whether c satisfies every non-empty filter.
func (w *Wizard) Matches(c domain.Character) bool {
	f := w.filters
	return (f.Age == "" || strconv.Itoa(c.Age) == f.Age) &&
		(f.Body == "" || c.Body == f.Body) &&
		(f.Ethnicity == "" || c.Ethnicity == f.Ethnicity) &&
		(f.Language == "" || c.Language == f.Language) &&
		(f.Relationship == "" || c.Relationship == f.Relationship) &&
		(f.Occupation == "" || c.Occupation == f.Occupation) &&
		(f.Hobbies == "" || strings.Contains(c.Hobbies, f.Hobbies)) &&
		(f.Personality == "" || strings.Contains(c.Personality, f.Personality))
}

// View lists every character, flagging those that match the filters.
func (w *Wizard) View() []Entry {
	out := make([]Entry, 0, len(w.characters))
	for _, c := range w.characters {
		out = append(out, Entry{
			Character:   c,
			Highlighted: w.Matches(c),
			Selected:    w.selected != nil && *w.selected == c.ID,
		})
	}
	return out
}

// Options returns the distinct non-empty values of key in first-seen order.
// Comma list attributes contribute one option per trait.
func (w *Wizard) Options(key string) ([]string, error) {
	var keys Filters
	if keys.field(key) == nil {
		return nil, ErrUnknownFilter
	}
	var out []string
	for _, c := range w.characters {
		for _, v := range values(c, key) {
			if !slices.Contains(out, v) {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

// AllOptions returns Options for every filter key.
func (w *Wizard) AllOptions() map[string][]string {
	out := make(map[string][]string, len(FilterKeys))
	for _, key := range FilterKeys {
		opts, _ := w.Options(key)
		if opts == nil {
			opts = []string{}
		}
		out[key] = opts
	}
	return out
}

// values returns the option values c contributes for key.
func values(c domain.Character, key string) []string {
	v := attribute(c, key)
	switch {
	case v == "":
		return nil
	case key == "hobbies" || key == "personality":
		return traits(v)
	}
	return []string{v}
}

// traits splits a comma separated attribute such as hobbies.
func traits(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func attribute(c domain.Character, key string) string {
	switch key {
	case "age":
		if c.Age == 0 {
			return ""
		}
		return strconv.Itoa(c.Age)
	case "body":
		return c.Body
	case "ethnicity":
		return c.Ethnicity
	case "language":
		return c.Language
	case "relationship":
		return c.Relationship
	case "occupation":
		return c.Occupation
	case "hobbies":
		return c.Hobbies
	case "personality":
		return c.Personality
	}
	return ""
}

func clamp(s Step) Step {
	if s < FirstStep {
		return FirstStep
	}
	if s > LastStep {
		return LastStep
	}
	return s
}

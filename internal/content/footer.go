package content

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/spec-kit/companion-service/internal/domain"
	"github.com/spec-kit/companion-service/internal/i18n"
)

var (
	ErrNotEditing     = errors.New("footer is not being edited")
	ErrUnknownSection = errors.New("unknown footer section")
	ErrUnknownField   = errors.New("unknown footer field")
)

// FooterStore persists the footer override row.
type FooterStore interface {
	Upsert(ctx context.Context, content domain.FooterContent) error
	Delete(ctx context.Context) error
}

// FooterEditor edits a draft copy of the footer. Nothing is stored until Save.
type FooterEditor struct {
	store    FooterStore
	defaults func() domain.FooterContent
	now      func() time.Time

	saved   domain.FooterContent
	draft   domain.FooterContent
	editing bool
}

// NewFooterEditor starts from saved content. defaults rebuilds the translated
// default footer used by ResetDefaults.
func NewFooterEditor(saved domain.FooterContent, store FooterStore, defaults func() domain.FooterContent) *FooterEditor {
	return &FooterEditor{
		store:    store,
		defaults: defaults,
		now:      time.Now,
		saved:    saved.Clone(),
		draft:    saved.Clone(),
	}
}

// Begin opens a draft copy of the saved content.
func (e *FooterEditor) Begin() {
	e.draft = e.saved.Clone()
	e.editing = true
}

func (e *FooterEditor) Editing() bool { return e.editing }

// Content returns the last saved content.
func (e *FooterEditor) Content() domain.FooterContent { return e.saved.Clone() }

// Draft returns the content being edited.
func (e *FooterEditor) Draft() domain.FooterContent { return e.draft.Clone() }

// SetText changes one of the free-text fields.
func (e *FooterEditor) SetText(field, value string) error {
	if !e.editing {
		return ErrNotEditing
	}
	switch field {
	case "companyName":
		e.draft.CompanyName = value
	case "companyDescription":
		e.draft.CompanyDescription = value
	case "contactAddress":
		e.draft.ContactAddress = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Replace swaps the whole draft, as when a client submits an edited footer.
func (e *FooterEditor) Replace(content domain.FooterContent) error {
	if !e.editing {
		return ErrNotEditing
	}
	e.draft = content.Clone()
	for _, section := range domain.FooterSections {
		if links := e.draft.Links(section); *links == nil {
			*links = []domain.FooterLink{}
		}
	}
	return nil
}

// AddItem appends a placeholder link to section.
func (e *FooterEditor) AddItem(section domain.FooterSection) (domain.FooterLink, error) {
	links, err := e.section(section)
	if err != nil {
		return domain.FooterLink{}, err
	}
	id := e.now().UnixMilli()
	for slices.ContainsFunc(*links, func(l domain.FooterLink) bool { return l.ID == id }) {
		id++
	}
	link := domain.FooterLink{ID: id, Title: "New Item", URL: "/"}
	*links = append(*links, link)
	return link, nil
}

// RemoveItem deletes the link with id from section. Unknown ids are ignored.
func (e *FooterEditor) RemoveItem(section domain.FooterSection, id int64) error {
	links, err := e.section(section)
	if err != nil {
		return err
	}
	*links = slices.DeleteFunc(*links, func(l domain.FooterLink) bool { return l.ID == id })
	return nil
}

// ChangeItem sets title or url on the link with id.
func (e *FooterEditor) ChangeItem(section domain.FooterSection, id int64, field, value string) error {
	links, err := e.section(section)
	if err != nil {
		return err
	}
	if field != "title" && field != "url" {
		return ErrUnknownField
	}
	for i := range *links {
		if (*links)[i].ID != id {
			continue
		}
		if field == "title" {
			(*links)[i].Title = value
		} else {
			(*links)[i].URL = value
		}
	}
	return nil
}

// Save stores the draft as row 1 and makes it the saved content.
func (e *FooterEditor) Save(ctx context.Context) error {
	if !e.editing {
		return ErrNotEditing
	}
	if err := e.store.Upsert(ctx, e.draft); err != nil {
		return err
	}
	e.saved = e.draft.Clone()
	e.editing = false
	return nil
}

// Cancel discards the draft.
func (e *FooterEditor) Cancel() {
	e.draft = e.saved.Clone()
	e.editing = false
}

// ResetDefaults rebuilds the translated defaults and deletes the stored row.
// The in-memory content is reset even when the delete fails.
func (e *FooterEditor) ResetDefaults(ctx context.Context) error {
	defaults := e.defaults()
	e.saved = defaults.Clone()
	e.draft = defaults.Clone()
	e.editing = false
	return e.store.Delete(ctx)
}

func (e *FooterEditor) section(section domain.FooterSection) (*[]domain.FooterLink, error) {
	if !e.editing {
		return nil, ErrNotEditing
	}
	links := e.draft.Links(section)
	if links == nil {
		return nil, ErrUnknownSection
	}
	return links, nil
}

// DefaultFooter builds the footer shown when nothing is stored.
func DefaultFooter(t i18n.Translator) domain.FooterContent {
	return domain.FooterContent{
		CompanyName:        t("general.siteName"),
		CompanyDescription: t("footer.companyDescription"),
		ContactAddress:     "Dintyp",
		Features: []domain.FooterLink{
			{ID: 1, Title: t("footer.features.createImage"), URL: "/generate"},
			{ID: 2, Title: t("footer.features.chat"), URL: "/chat"},
			{ID: 3, Title: t("footer.features.createCharacter"), URL: "/characters"},
			{ID: 4, Title: t("footer.features.gallery"), URL: "/collection"},
			{ID: 5, Title: t("footer.features.explore"), URL: "/"},
		},
		Popular: []domain.FooterLink{
			{ID: 1, Title: t("general.siteName"), URL: "/"},
			{ID: 2, Title: "AI Girlfriend", URL: "/characters?category=companion"},
			{ID: 3, Title: "AI Anime", URL: "/characters?category=anime"},
			{ID: 4, Title: "AI Boyfriend", URL: "/characters?category=companion"},
		},
		Legal: []domain.FooterLink{
			{ID: 1, Title: t("footer.legal.termsPolicies"), URL: "/terms"},
		},
		AboutUs: []domain.FooterLink{
			{ID: 1, Title: t("footer.about.aiGirlfriendChat"), URL: "/chat"},
			{ID: 2, Title: t("footer.about.aiSexting"), URL: "/chat?mode=sext"},
			{ID: 3, Title: t("footer.about.howItWorks"), URL: "/#how-it-works"},
			{ID: 4, Title: t("footer.about.aboutUs"), URL: "/about"},
			{ID: 5, Title: t("footer.about.roadmap"), URL: "/#roadmap"},
			{ID: 6, Title: t("footer.about.blog"), URL: "/blog"},
			{ID: 7, Title: t("footer.about.guide"), URL: "/#guide"},
			{ID: 8, Title: t("footer.about.complaints"), URL: "/#complaints"},
			{ID: 9, Title: t("footer.about.termsPolicies"), URL: "/terms"},
		},
		Company: []domain.FooterLink{
			{ID: 1, Title: t("footer.company.weAreHiring"), URL: "/careers"},
		},
	}
}

package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/companion-service/internal/domain"
	"github.com/spec-kit/companion-service/internal/i18n"
)

type memoryFooterStore struct {
	stored  *domain.FooterContent
	deleted bool
	err     error
}

func (s *memoryFooterStore) Upsert(_ context.Context, c domain.FooterContent) error {
	if s.err != nil {
		return s.err
	}
	s.stored = &c
	return nil
}

func (s *memoryFooterStore) Delete(context.Context) error {
	s.deleted = true
	s.stored = nil
	return s.err
}

func newEditor(store FooterStore) *FooterEditor {
	defaults := func() domain.FooterContent { return DefaultFooter(i18n.For(i18n.English)) }
	e := NewFooterEditor(DefaultFooter(i18n.For(i18n.Swedish)), store, defaults)
	e.now = func() time.Time { return time.UnixMilli(42) }
	return e
}

func TestDefaultFooter(t *testing.T) {
	sv := DefaultFooter(i18n.For(i18n.Swedish))
	en := DefaultFooter(i18n.For(i18n.English))

	assert.Equal(t, "Dintyp", sv.CompanyName)
	assert.Len(t, sv.Features, 5)
	assert.Len(t, sv.AboutUs, 9)
	assert.Equal(t, "Skapa bild", sv.Features[0].Title)
	assert.Equal(t, "Create image", en.Features[0].Title)
	assert.Equal(t, "/careers", en.Company[0].URL)
}

func TestFooterEditor_RequiresBegin(t *testing.T) {
	e := newEditor(&memoryFooterStore{})
	assert.ErrorIs(t, e.SetText("companyName", "x"), ErrNotEditing)
	_, err := e.AddItem(domain.FooterLegal)
	assert.ErrorIs(t, err, ErrNotEditing)
	assert.ErrorIs(t, e.Save(context.Background()), ErrNotEditing)
}

func TestFooterEditor_EditAndSave(t *testing.T) {
	store := &memoryFooterStore{}
	e := newEditor(store)
	e.Begin()

	require.NoError(t, e.SetText("companyName", "Acme"))
	link, err := e.AddItem(domain.FooterLegal)
	require.NoError(t, err)
	assert.Equal(t, int64(42), link.ID)

	second, err := e.AddItem(domain.FooterLegal)
	require.NoError(t, err)
	assert.Equal(t, int64(43), second.ID)

	require.NoError(t, e.ChangeItem(domain.FooterLegal, 42, "url", "/privacy"))
	require.NoError(t, e.RemoveItem(domain.FooterLegal, 1))
	assert.Equal(t, "Dintyp", e.Content().CompanyName)

	require.NoError(t, e.Save(context.Background()))
	require.NotNil(t, store.stored)
	assert.Equal(t, "Acme", store.stored.CompanyName)
	assert.Equal(t, []domain.FooterLink{
		{ID: 42, Title: "New Item", URL: "/privacy"},
		{ID: 43, Title: "New Item", URL: "/"},
	}, store.stored.Legal)
	assert.Equal(t, "Acme", e.Content().CompanyName)
	assert.False(t, e.Editing())
}

func TestFooterEditor_CancelDiscards(t *testing.T) {
	e := newEditor(&memoryFooterStore{})
	e.Begin()
	require.NoError(t, e.SetText("contactAddress", "Elsewhere"))
	e.Cancel()

	assert.Equal(t, "Dintyp", e.Draft().ContactAddress)
	assert.False(t, e.Editing())
}

func TestFooterEditor_SaveFailureKeepsDraft(t *testing.T) {
	e := newEditor(&memoryFooterStore{err: errors.New("db down")})
	e.Begin()
	require.NoError(t, e.SetText("companyName", "Acme"))

	assert.Error(t, e.Save(context.Background()))
	assert.True(t, e.Editing())
	assert.Equal(t, "Acme", e.Draft().CompanyName)
	assert.Equal(t, "Dintyp", e.Content().CompanyName)
}

func TestFooterEditor_ResetDefaults(t *testing.T) {
	store := &memoryFooterStore{}
	e := newEditor(store)
	e.Begin()
	require.NoError(t, e.SetText("companyName", "Acme"))
	require.NoError(t, e.Save(context.Background()))

	require.NoError(t, e.ResetDefaults(context.Background()))
	assert.True(t, store.deleted)
	assert.Equal(t, "Create image", e.Content().Features[0].Title)
}

func TestFooterEditor_UnknownSectionAndField(t *testing.T) {
	e := newEditor(&memoryFooterStore{})
	e.Begin()
	_, err := e.AddItem("sidebar")
	assert.ErrorIs(t, err, ErrUnknownSection)
	assert.ErrorIs(t, e.SetText("logo", "x"), ErrUnknownField)
	assert.ErrorIs(t, e.ChangeItem(domain.FooterLegal, 1, "icon", "x"), ErrUnknownField)
}

func TestFooterEditor_Replace(t *testing.T) {
	e := newEditor(&memoryFooterStore{})
	assert.ErrorIs(t, e.Replace(domain.FooterContent{}), ErrNotEditing)

	e.Begin()
	require.NoError(t, e.Replace(domain.FooterContent{CompanyName: "Acme", Legal: []domain.FooterLink{{ID: 7, Title: "T", URL: "/t"}}}))
	draft := e.Draft()
	assert.Equal(t, "Acme", draft.CompanyName)
	assert.Len(t, draft.Legal, 1)
	assert.NotNil(t, draft.Features)
	assert.Empty(t, draft.Features)
}

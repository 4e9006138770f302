package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/companion-service/internal/content"
	"github.com/spec-kit/companion-service/internal/domain"
	"github.com/spec-kit/companion-service/internal/events"
	"github.com/spec-kit/companion-service/internal/i18n"
	"github.com/spec-kit/companion-service/internal/repository"
)

// ErrFeatureNotFound is returned when an id is not in the plan feature list.
var ErrFeatureNotFound = errors.New("plan feature not found")

// ContentService serves and edits the footer and the plan feature table.
type ContentService struct {
	features   repository.PlanFeatureRepository
	footer     repository.FooterRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewContentService builds the service.
func NewContentService(features repository.PlanFeatureRepository, footer repository.FooterRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ContentService {
	return &ContentService{
		features:   features,
		footer:     footer,
		dispatcher: dispatcher,
		logger:     logger.Named("content_service"),
	}
}

func (s *ContentService) ListPlanFeatures(ctx context.Context) ([]domain.PlanFeature, error) {
	return s.features.List(ctx)
}

func (s *ContentService) ListActivePlanFeatures(ctx context.Context) ([]domain.PlanFeature, error) {
	return s.features.ListActive(ctx)
}

func (s *ContentService) CreatePlanFeature(ctx context.Context, actor events.Actor, f *domain.PlanFeature) error {
	if err := s.features.Create(ctx, f); err != nil {
		return err
	}
	s.publish(ctx, actor, events.ContentPlanFeatures, "create", f.ID)
	return nil
}

// UpdatePlanFeature applies patch to the stored row. Columns the patch leaves
// nil keep their stored value and sort_order is never changed here.
func (s *ContentService) UpdatePlanFeature(ctx context.Context, actor events.Actor, id string, patch domain.PlanFeaturePatch) (domain.PlanFeature, error) {
	items, err := s.features.List(ctx)
	if err != nil {
		return domain.PlanFeature{}, err
	}
	idx := slices.IndexFunc(items, func(f domain.PlanFeature) bool { return f.ID == id })
	if idx < 0 {
		return domain.PlanFeature{}, ErrFeatureNotFound
	}
	f := items[idx]
	patch.Apply(&f)
	if err := s.features.Update(ctx, &f); err != nil {
		return domain.PlanFeature{}, err
	}
	s.publish(ctx, actor, events.ContentPlanFeatures, "update", f.ID)
	return f, nil
}

// DeletePlanFeature removes the row and renumbers the rest so sort_order
// stays contiguous.
func (s *ContentService) DeletePlanFeature(ctx context.Context, actor events.Actor, id string) error {
	if err := s.features.Delete(ctx, id); err != nil {
		return err
	}
	items, err := s.features.List(ctx)
	if err != nil {
		return err
	}
	list := content.NewPlanFeatureList(items)
	if err := s.persistChanged(ctx, items, list); err != nil {
		return err
	}
	s.publish(ctx, actor, events.ContentPlanFeatures, "delete", id)
	return nil
}

// MovePlanFeature swaps the feature with its neighbour in direction dir.
func (s *ContentService) MovePlanFeature(ctx context.Context, actor events.Actor, id string, dir int) ([]domain.PlanFeature, error) {
	items, err := s.features.List(ctx)
	if err != nil {
		return nil, err
	}
	list := content.NewPlanFeatureList(items)
	idx := slices.IndexFunc(list.Items(), func(f domain.PlanFeature) bool { return f.ID == id })
	if idx < 0 {
		return nil, ErrFeatureNotFound
	}
	if err := list.Move(idx, dir); err != nil {
		return nil, err
	}
	if err := s.persistChanged(ctx, items, list); err != nil {
		return nil, err
	}
	s.publish(ctx, actor, events.ContentPlanFeatures, "move", id)
	return list.Items(), nil
}

// SavePlanFeatures stores the submitted features in the submitted order.
// Stored rows missing from the submission keep their relative order and are
// renumbered after the submitted ones.
func (s *ContentService) SavePlanFeatures(ctx context.Context, actor events.Actor, items []domain.PlanFeature) ([]domain.PlanFeature, error) {
	for i := range items {
		items[i].SortOrder = i
	}
	list := content.NewPlanFeatureList(items)
	if err := list.PersistAll(ctx, s.features); err != nil {
		return nil, err
	}

	stored, err := s.features.List(ctx)
	if err != nil {
		return nil, err
	}
	submitted := make(map[string]bool, list.Len())
	for _, f := range list.Items() {
		submitted[f.ID] = true
	}
	full := list.Items()
	for _, f := range stored {
		if submitted[f.ID] {
			continue
		}
		f.SortOrder = len(full)
		full = append(full, f)
	}
	all := content.NewPlanFeatureList(full)
	if err := s.persistChanged(ctx, stored, all); err != nil {
		return nil, err
	}
	s.publish(ctx, actor, events.ContentPlanFeatures, "save_all", "")
	return all.Items(), nil
}

// persistChanged writes only rows whose position changed.
func (s *ContentService) persistChanged(ctx context.Context, before []domain.PlanFeature, list *content.PlanFeatureList) error {
	previous := make(map[string]int, len(before))
	for _, f := range before {
		previous[f.ID] = f.SortOrder
	}
	var errs []error
	for _, f := range list.Items() {
		if order, ok := previous[f.ID]; ok && order == f.SortOrder {
			continue
		}
		if err := s.features.Update(ctx, &f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Footer returns the stored footer, or the translated defaults when nothing
// is stored or the store cannot be read.
func (s *ContentService) Footer(ctx context.Context, lang string) (domain.FooterContent, bool) {
	stored, err := s.footer.Get(ctx)
	if err == nil {
		return stored.Content, true
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Error("Error loading footer data", zap.Error(err))
	}
	return s.defaults(lang), false
}

// EditFooter opens an editor on the stored footer, applies edit and saves.
// Defaults are only edited when no footer is stored; any other read error
// aborts so a stored footer is never overwritten with defaults.
func (s *ContentService) EditFooter(ctx context.Context, lang string, actor events.Actor, edit func(*content.FooterEditor) error) (domain.FooterContent, error) {
	editor, err := s.editor(ctx, lang)
	if err != nil {
		return domain.FooterContent{}, err
	}
	editor.Begin()
	if err := edit(editor); err != nil {
		editor.Cancel()
		return domain.FooterContent{}, err
	}
	if err := editor.Save(ctx); err != nil {
		return domain.FooterContent{}, err
	}
	s.publish(ctx, actor, events.ContentFooter, "save", "1")
	return editor.Content(), nil
}

// ResetFooter deletes the stored footer and returns the defaults for lang.
func (s *ContentService) ResetFooter(ctx context.Context, lang string, actor events.Actor) (domain.FooterContent, error) {
	defaults := func() domain.FooterContent { return s.defaults(lang) }
	editor := content.NewFooterEditor(defaults(), s.footer, defaults)
	if err := editor.ResetDefaults(ctx); err != nil {
		return domain.FooterContent{}, err
	}
	s.publish(ctx, actor, events.ContentFooter, "reset", "1")
	return editor.Content(), nil
}

func (s *ContentService) editor(ctx context.Context, lang string) (*content.FooterEditor, error) {
	current := s.defaults(lang)
	stored, err := s.footer.Get(ctx)
	switch {
	case err == nil:
		current = stored.Content
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, err
	}
	defaults := func() domain.FooterContent { return s.defaults(lang) }
	return content.NewFooterEditor(current, s.footer, defaults), nil
}

func (s *ContentService) defaults(lang string) domain.FooterContent {
	return content.DefaultFooter(i18n.For(lang))
}

func (s *ContentService) publish(ctx context.Context, actor events.Actor, kind, action, id string) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventContentChanged,
		Subject:   kind,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   events.ContentChangedPayload{Kind: kind, Action: action, ID: id},
	})
	if err != nil {
		s.logger.Warn("content event handler failed", zap.Error(err))
	}
}

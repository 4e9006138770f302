// Package content holds the draft editors behind the admin content panels.
package content

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spec-kit/companion-service/internal/domain"
	"github.com/spec-kit/companion-service/internal/i18n"
)

// ErrIndexOutOfRange is returned for positions outside the list.
var ErrIndexOutOfRange = errors.New("plan feature index out of range")

// PlanFeatureSaver persists a single feature.
type PlanFeatureSaver interface {
	Create(ctx context.Context, f *domain.PlanFeature) error
	Update(ctx context.Context, f *domain.PlanFeature) error
}

// PlanFeatureList is an ordered draft of plan features. sort_order always
// equals the position in the list.
type PlanFeatureList struct {
	items []domain.PlanFeature
	now   func() time.Time
}

// NewPlanFeatureList loads items ordered by their stored sort_order.
func NewPlanFeatureList(items []domain.PlanFeature) *PlanFeatureList {
	l := &PlanFeatureList{now: time.Now}
	l.Load(items)
	return l
}

// Load replaces the draft.
func (l *PlanFeatureList) Load(items []domain.PlanFeature) {
	l.items = slices.Clone(items)
	slices.SortStableFunc(l.items, func(a, b domain.PlanFeature) int {
		return a.SortOrder - b.SortOrder
	})
	l.renumber()
}

// Items returns a copy of the draft.
func (l *PlanFeatureList) Items() []domain.PlanFeature {
	return slices.Clone(l.items)
}

func (l *PlanFeatureList) Len() int { return len(l.items) }

// Add appends a placeholder feature and returns it.
func (l *PlanFeatureList) Add() domain.PlanFeature {
	f := domain.PlanFeature{
		FeatureKey:     fmt.Sprintf("feature_%d", l.now().UnixMilli()),
		FeatureLabelEN: i18n.T(i18n.English, "planFeatures.newLabel"),
		FeatureLabelSV: i18n.T(i18n.Swedish, "planFeatures.newLabel"),
		FreeValueEN:    i18n.T(i18n.English, "planFeatures.newValue"),
		FreeValueSV:    i18n.T(i18n.Swedish, "planFeatures.newValue"),
		PremiumValueEN: "Premium",
		PremiumValueSV: "Premium",
		SortOrder:      len(l.items),
		Active:         true,
	}
	l.items = append(l.items, f)
	return f
}

// Update applies patch to the feature at i.
func (l *PlanFeatureList) Update(i int, patch domain.PlanFeaturePatch) error {
	if i < 0 || i >= len(l.items) {
		return ErrIndexOutOfRange
	}
	patch.Apply(&l.items[i])
	return nil
}

// Remove drops the feature at i and returns it so the caller can delete the
// stored row when it has an id.
func (l *PlanFeatureList) Remove(i int) (domain.PlanFeature, error) {
	if i < 0 || i >= len(l.items) {
		return domain.PlanFeature{}, ErrIndexOutOfRange
	}
	removed := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	l.renumber()
	return removed, nil
}

// Move swaps the feature at i with its neighbour in direction dir (-1 up,
// +1 down). Moving past either end is a no-op.
func (l *PlanFeatureList) Move(i, dir int) error {
	if i < 0 || i >= len(l.items) {
		return ErrIndexOutOfRange
	}
	target := i + dir
	if dir == 0 || target < 0 || target >= len(l.items) {
		return nil
	}
	l.items[i], l.items[target] = l.items[target], l.items[i]
	l.renumber()
	return nil
}

// PersistAll saves every feature in order, updating those with an id and
// creating the rest. Failures do not stop the remaining saves.
func (l *PlanFeatureList) PersistAll(ctx context.Context, saver PlanFeatureSaver) error {
	var errs []error
	for i := range l.items {
		f := &l.items[i]
		var err error
		if f.ID != "" {
			err = saver.Update(ctx, f)
		} else {
			err = saver.Create(ctx, f)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.FeatureKey, err))
		}
	}
	return errors.Join(errs...)
}

func (l *PlanFeatureList) renumber() {
	for i := range l.items {
		l.items[i].SortOrder = i
	}
}

package domain

// PlanFeature is one row of the free vs premium comparison table.
type PlanFeature struct {
	ID             string `json:"id,omitempty"`
	FeatureKey     string `json:"feature_key"`
	FeatureLabelEN string `json:"feature_label_en"`
	FeatureLabelSV string `json:"feature_label_sv"`
	FreeValueEN    string `json:"free_value_en"`
	FreeValueSV    string `json:"free_value_sv"`
	PremiumValueEN string `json:"premium_value_en"`
	PremiumValueSV string `json:"premium_value_sv"`
	SortOrder      int    `json:"sort_order"`
	Active         bool   `json:"active"`
}

// PlanFeaturePatch carries a partial update; nil fields are left untouched.
type PlanFeaturePatch struct {
	FeatureKey     *string `json:"feature_key,omitempty"`
	FeatureLabelEN *string `json:"feature_label_en,omitempty"`
	FeatureLabelSV *string `json:"feature_label_sv,omitempty"`
	FreeValueEN    *string `json:"free_value_en,omitempty"`
	FreeValueSV    *string `json:"free_value_sv,omitempty"`
	PremiumValueEN *string `json:"premium_value_en,omitempty"`
	PremiumValueSV *string `json:"premium_value_sv,omitempty"`
	Active         *bool   `json:"active,omitempty"`
}

// Apply copies the set fields of the patch onto f.
func (p PlanFeaturePatch) Apply(f *PlanFeature) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&f.FeatureKey, p.FeatureKey)
	setString(&f.FeatureLabelEN, p.FeatureLabelEN)
	setString(&f.FeatureLabelSV, p.FeatureLabelSV)
	setString(&f.FreeValueEN, p.FreeValueEN)
	setString(&f.FreeValueSV, p.FreeValueSV)
	setString(&f.PremiumValueEN, p.PremiumValueEN)
	setString(&f.PremiumValueSV, p.PremiumValueSV)
	if p.Active != nil {
		f.Active = *p.Active
	}
}

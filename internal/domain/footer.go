package domain

import (
	"slices"
	"time"
)

// FooterSection names one of the editable link lists in the footer.
type FooterSection string

const (
	FooterFeatures FooterSection = "features"
	FooterPopular  FooterSection = "popular"
	FooterLegal    FooterSection = "legal"
	FooterAboutUs  FooterSection = "aboutUs"
	FooterCompany  FooterSection = "company"
)

// FooterSections lists every link section in display order.
var FooterSections = []FooterSection{FooterFeatures, FooterPopular, FooterLegal, FooterAboutUs, FooterCompany}

// FooterLink is a single footer entry.
type FooterLink struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// FooterContent is the JSON document stored in footer_content.content.
type FooterContent struct {
	CompanyName        string       `json:"companyName"`
	CompanyDescription string       `json:"companyDescription"`
	ContactAddress     string       `json:"contactAddress"`
	Features           []FooterLink `json:"features"`
	Popular            []FooterLink `json:"popular"`
	Legal              []FooterLink `json:"legal"`
	AboutUs            []FooterLink `json:"aboutUs"`
	Company            []FooterLink `json:"company"`
}

// StoredFooter is the persisted override row.
type StoredFooter struct {
	Content   FooterContent
	UpdatedAt time.Time
}

// Links returns a pointer to the slice backing section, or nil for unknown sections.
func (f *FooterContent) Links(section FooterSection) *[]FooterLink {
	switch section {
	case FooterFeatures:
		return &f.Features
	case FooterPopular:
		return &f.Popular
	case FooterLegal:
		return &f.Legal
	case FooterAboutUs:
		return &f.AboutUs
	case FooterCompany:
		return &f.Company
	}
	return nil
}

// Clone returns a deep copy so drafts never alias saved content.
func (f FooterContent) Clone() FooterContent {
	out := f
	for _, section := range FooterSections {
		src := f.Links(section)
		dst := out.Links(section)
		*dst = slices.Clone(*src)
	}
	return out
}

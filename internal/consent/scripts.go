package consent

import (
	"github.com/spec-kit/companion-service/internal/config"
)

const (
	AnalyticsScriptID = "plausible-script"
	MarketingScriptID = "marketing-loader"

	defaultPlausibleSrc = "https://plausible.io/js/script.js"
	marketingLoader     = "window.__marketingLoaded=true;" +
		"window.trackMarketingEvent=function(n,p){window.plausible&&window.plausible(n,{props:p})};"
)

// Script describes a tag the page should inject.
type Script struct {
	ID     string            `json:"id"`
	Src    string            `json:"src,omitempty"`
	Defer  bool              `json:"defer,omitempty"`
	Attrs  map[string]string `json:"attrs,omitempty"`
	Inline string            `json:"inline,omitempty"`
}

// Scripts returns the tags allowed by record. host is the fallback analytics domain.
func Scripts(record *Record, host string, cfg config.AnalyticsConfig) []Script {
	scripts := []Script{}
	if !record.Valid() {
		return scripts
	}
	if record.Preferences.Analytics {
		domain := cfg.PlausibleDomain
		if domain == "" {
			domain = host
		}
		src := cfg.PlausibleSrc
		if src == "" {
			src = defaultPlausibleSrc
		}
		scripts = append(scripts, Script{
			ID:    AnalyticsScriptID,
			Src:   src,
			Defer: true,
			Attrs: map[string]string{"data-domain": domain},
		})
	}
	if record.Preferences.Marketing {
		scripts = append(scripts, Script{ID: MarketingScriptID, Inline: marketingLoader})
	}
	return scripts
}

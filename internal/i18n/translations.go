package i18n

var translations = map[string]map[string]string{
	Swedish: {
		"general.siteName":                "Dintyp",
		"footer.companyDescription":       "Dintyp.se erbjuder uppslukande upplevelser med AI-kompanjoner som känns verkliga.",
		"footer.features.createImage":     "Skapa bild",
		"footer.features.chat":            "Chatta",
		"footer.features.createCharacter": "Skapa karaktär",
		"footer.features.gallery":         "Galleri",
		"footer.features.explore":         "Utforska",
		"footer.legal.termsPolicies":      "Villkor och policyer",
		"footer.about.aiGirlfriendChat":   "AI-flickvän chatt",
		"footer.about.aiSexting":          "AI-sexting",
		"footer.about.howItWorks":         "Hur det fungerar",
		"footer.about.aboutUs":            "Om oss",
		"footer.about.roadmap":            "Färdplan",
		"footer.about.blog":               "Blogg",
		"footer.about.guide":              "Guide",
		"footer.about.complaints":         "Klagomål och innehållsborttagning",
		"footer.about.termsPolicies":      "Villkor och policyer",
		"footer.company.weAreHiring":      "Vi anställer",
		"footer.newItem":                  "Ny länk",
		"planFeatures.newLabel":           "Ny funktion",
		"planFeatures.newValue":           "Värde",
	},
	English: {
		"general.siteName":                "Dintyp",
		"footer.companyDescription":       "Dintyp.se powers immersive experiences with AI companions that feel real.",
		"footer.features.createImage":     "Create image",
		"footer.features.chat":            "Chat",
		"footer.features.createCharacter": "Create character",
		"footer.features.gallery":         "Gallery",
		"footer.features.explore":         "Explore",
		"footer.legal.termsPolicies":      "Terms and Policies",
		"footer.about.aiGirlfriendChat":   "AI Girlfriend Chat",
		"footer.about.aiSexting":          "AI Sexting",
		"footer.about.howItWorks":         "How it works",
		"footer.about.aboutUs":            "About us",
		"footer.about.roadmap":            "Roadmap",
		"footer.about.blog":               "Blog",
		"footer.about.guide":              "Guide",
		"footer.about.complaints":         "Complaints and content removal",
		"footer.about.termsPolicies":      "Terms and Policies",
		"footer.company.weAreHiring":      "We're hiring",
		"footer.newItem":                  "New Item",
		"planFeatures.newLabel":           "New Feature",
		"planFeatures.newValue":           "Value",
	},
}

package domain

// Character is a selectable companion template used by the creation wizard.
type Character struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Image        string `json:"image"`
	Description  string `json:"description"`
	Personality  string `json:"personality"`
	Occupation   string `json:"occupation"`
	Hobbies      string `json:"hobbies"`
	Body         string `json:"body"`
	Ethnicity    string `json:"ethnicity"`
	Language     string `json:"language"`
	Relationship string `json:"relationship"`
}

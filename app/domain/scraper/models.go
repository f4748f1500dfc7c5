package scraper

// StatusReport is the parsed upstream status page.
type StatusReport struct {
	Summary     string              `json:"summary"`
	Federations []map[string]string `json:"federations"`
}

type Federation struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type FederationList struct {
	Federations []Federation `json:"federations"`
}

// FederationMeets is the meet list of one federation, optionally narrowed
// to a single year.
type FederationMeets struct {
	Federation string              `json:"federation"`
	Year       string              `json:"year,omitempty"`
	Meets      []map[string]string `json:"meets"`
}

type RecordCategory struct {
	Title   string              `json:"title"`
	Records []map[string]string `json:"records"`
}

type RecordSet struct {
	Filter     string           `json:"filter,omitempty"`
	Categories []RecordCategory `json:"categories"`
}

type Meet struct {
	Code    string              `json:"code"`
	Title   string              `json:"title"`
	Results []map[string]string `json:"results"`
}

// Lifter is one competitor's page: identity plus their competition history.
type Lifter struct {
	Username     string              `json:"username"`
	Name         string              `json:"name"`
	Competitions []map[string]string `json:"competitions"`
}

// Package render maps a validated layout plus canonical data to a typed
// component tree: the view model a front-end paints. Rendering never fails;
// unknown component tags become diagnostic placeholders and dangling
// references degrade to plain text.
package render

// View is the rendered result of one pipeline run.
type View struct {
	Banner     string          `json:"banner,omitempty"` // non-blocking notice, e.g. demo-data
	Assistant  string          `json:"assistant,omitempty"`
	Columns    int             `json:"columns"`
	Gap        string          `json:"gap,omitempty"`
	Components []ComponentView `json:"components"`
}

// ComponentView is one rendered component. Kind selects which of the typed
// payloads is populated.
type ComponentView struct {
	Kind       string           `json:"kind"`
	GridColumn string           `json:"gridColumn"`
	Header     *HeaderView      `json:"header,omitempty"`
	Profile    *ProfileView     `json:"profile,omitempty"`
	Table      *TableView       `json:"table,omitempty"`
	Cards      *CardGridView    `json:"cards,omitempty"`
	Metrics    *MetricsView     `json:"metrics,omitempty"`
	Empty      *EmptyStateView  `json:"empty,omitempty"`
	Diagnostic *DiagnosticView  `json:"diagnostic,omitempty"`
}

// HeaderView displays a title and subtitle.
type HeaderView struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// ManagerChip is the reporting-manager reference on a profile. Navigable is
// false when rm_id does not resolve within the current result set.
type ManagerChip struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Navigable bool   `json:"navigable"`
}

// ProfileView displays a single employee record.
type ProfileView struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Designation       string       `json:"designation,omitempty"`
	TechGroup         string       `json:"techGroup,omitempty"`
	Department        string       `json:"department,omitempty"`
	Location          string       `json:"location,omitempty"`
	Manager           *ManagerChip `json:"manager,omitempty"`
	TotalExperience   string       `json:"totalExperience,omitempty"`
	CompanyExperience string       `json:"companyExperience,omitempty"`
	Deployment        string       `json:"deployment,omitempty"`
	Status            string       `json:"status,omitempty"`
	Skills            []string     `json:"skills,omitempty"`
	Projects          []string     `json:"projects,omitempty"`
	Reason            string       `json:"reason,omitempty"`
}

// TableColumn is a data_table column with its display label.
type TableColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// TableView displays records as a paginated table. Rows holds every
// formatted row; the Pager selects the visible window.
type TableView struct {
	Title   string              `json:"title,omitempty"`
	Columns []TableColumn       `json:"columns"`
	Rows    []map[string]string `json:"rows"`
	Pager   Pager               `json:"pager"`
}

// Score color bands for ranked cards.
const (
	BandGreen  = "green"  // score >= 70
	BandYellow = "yellow" // score >= 50
	BandRed    = "red"
)

// CardView is one compact employee card.
type CardView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Designation string   `json:"designation,omitempty"`
	Department  string   `json:"department,omitempty"`
	Location    string   `json:"location,omitempty"`
	Status      string   `json:"status,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Band        string   `json:"band,omitempty"`
	Reason      string   `json:"reason,omitempty"`
}

// CardGridView displays records as compact cards, sorted by score when every
// record carries one.
type CardGridView struct {
	Title string     `json:"title,omitempty"`
	Cards []CardView `json:"cards"`
}

// MetricTile is one tile of a metrics grid.
type MetricTile struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// MetricsView shows the derived status counts.
type MetricsView struct {
	Title string       `json:"title,omitempty"`
	Tiles []MetricTile `json:"tiles"`
}

// EmptyStateView is the zero-records component.
type EmptyStateView struct {
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
}

// DiagnosticView is the placeholder for unknown component tags.
type DiagnosticView struct {
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ScoreBand maps a 0..100 score onto its color band.
func ScoreBand(score float64) string {
	switch {
	case score >= 70:
		return BandGreen
	case score >= 50:
		return BandYellow
	default:
		return BandRed
	}
}

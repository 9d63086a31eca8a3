package render

import (
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/anandv/hrms-dashboard/internal/types"
)

// indexCapacity bounds the session employee lookup cache.
const indexCapacity = 512

// preferredColumns lead the table column order; remaining keys follow
// alphabetically.
var preferredColumns = []string{
	"employee_id", "first_name", "display_name", "designation",
	"employee_department", "emp_location", "employee_status",
}

// Renderer dispatches validated layouts to typed component views. It keeps a
// session-scoped employee index for profile navigation, plus the ID set of
// the most recent result set: manager chips are navigable only against the
// latter.
type Renderer struct {
	index   *lru.Cache[string, types.EmployeeRecord]
	current map[string]struct{}
	History History
	log     *logrus.Logger
}

// New creates a Renderer.
func New(log *logrus.Logger) *Renderer {
	index, _ := lru.New[string, types.EmployeeRecord](indexCapacity)
	return &Renderer{index: index, log: log}
}

// Render maps a validated layout and canonical data to a component tree.
// It never fails: unknown tags map to a diagnostic placeholder.
func (r *Renderer) Render(l *types.Layout, data *types.CanonicalResult) *View {
	records := data.Records()
	r.current = make(map[string]struct{}, len(records))
	for _, rec := range records {
		if id := rec.ID(); id != "" {
			r.index.Add(id, rec)
			r.current[id] = struct{}{}
		}
	}

	view := &View{Columns: l.Columns, Gap: l.Gap}
	for _, comp := range l.Components {
		view.Components = append(view.Components, r.renderComponent(comp, l.DataMapping, records))
	}
	return view
}

func (r *Renderer) renderComponent(comp types.Component, mapping map[string]string, records []types.EmployeeRecord) ComponentView {
	out := ComponentView{Kind: string(comp.Type), GridColumn: comp.Style.GridColumn}

	switch comp.Type {
	case types.ComponentHeader:
		out.Header = &HeaderView{Title: comp.Title, Subtitle: comp.Subtitle}
	case types.ComponentProfileCard:
		out.Profile = r.renderProfile(firstRecord(comp.DataField, records))
	case types.ComponentDataTable:
		out.Table = renderTable(comp.Title, resolveSequence(comp.DataField, records), mapping)
	case types.ComponentCardGrid:
		out.Cards = renderCards(comp.Title, resolveSequence(comp.DataField, records))
	case types.ComponentMetricsGrid:
		out.Metrics = renderMetrics(comp.Title, resolveSequence(comp.DataField, records))
	case types.ComponentEmptyState:
		out.Empty = &EmptyStateView{
			Title:   comp.Title,
			Message: "Try a different query or broaden the filters.",
		}
	default:
		// Unknown tags must never crash the view.
		r.log.WithField("tag", string(comp.Type)).Warn("unknown component tag")
		out.Diagnostic = &DiagnosticView{
			Tag:     string(comp.Type),
			Message: "unsupported component",
		}
	}
	return out
}

// OpenEmployee resolves an employee by ID from the session index, records
// the visit in the navigation history, and returns the profile view.
func (r *Renderer) OpenEmployee(id string) (*ProfileView, bool) {
	rec, ok := r.index.Get(id)
	if !ok {
		return nil, false
	}
	r.History.Push(HistoryEntry{ID: id, Name: rec.DisplayName()})
	return r.renderProfile(rec), true
}

// GoBack traverses to the previously visited employee.
func (r *Renderer) GoBack() (*ProfileView, bool) {
	entry, ok := r.History.Back()
	if !ok {
		return nil, false
	}
	rec, ok := r.index.Get(entry.ID)
	if !ok {
		return nil, false
	}
	return r.renderProfile(rec), true
}

func (r *Renderer) renderProfile(rec types.EmployeeRecord) *ProfileView {
	if rec == nil {
		return &ProfileView{Name: "Unknown employee"}
	}

	profile := &ProfileView{
		ID:                rec.ID(),
		Name:              rec.DisplayName(),
		Designation:       rec.GetString("designation"),
		TechGroup:         rec.GetString("tech_group"),
		Department:        rec.Department(),
		Location:          rec.GetString("emp_location"),
		TotalExperience:   rec.GetString("total_exp"),
		CompanyExperience: rec.GetString("vvdn_exp"),
		Deployment:        rec.GetString("deployment"),
		Status:            rec.Status(),
		Skills:            rec.Skills(),
		Projects:          stringList(rec["projects"]),
		Reason:            rec.GetString("reason"),
	}

	if rmID := rec.ManagerID(); rmID != "" {
		// Weak back-reference: navigable only when the target is in the
		// same result set, plain text otherwise.
		_, resolvable := r.current[rmID]
		profile.Manager = &ManagerChip{
			ID:        rmID,
			Name:      rec.ManagerName(),
			Navigable: resolvable,
		}
	}
	return profile
}

func renderTable(title string, records []types.EmployeeRecord, mapping map[string]string) *TableView {
	table := &TableView{Title: title, Pager: NewPager(len(records))}
	if len(records) == 0 {
		return table
	}

	table.Columns = deriveColumns(records[0], mapping)
	for _, rec := range records {
		row := make(map[string]string, len(table.Columns))
		for _, col := range table.Columns {
			if col.Key == "first_name" {
				// last_name is folded into a single full-name column.
				row[col.Key] = strings.TrimSpace(rec.GetString("first_name") + " " + rec.GetString("last_name"))
				continue
			}
			row[col.Key] = rec.GetString(col.Key)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// deriveColumns derives the column set from the keys of the first row,
// excluding last_name, which merges into first_name.
func deriveColumns(first types.EmployeeRecord, mapping map[string]string) []TableColumn {
	seen := make(map[string]bool, len(first))
	for key := range first {
		if key != "last_name" {
			seen[key] = true
		}
	}

	ordered := make([]string, 0, len(seen))
	for _, key := range preferredColumns {
		if seen[key] {
			ordered = append(ordered, key)
			delete(seen, key)
		}
	}
	rest := make([]string, 0, len(seen))
	for key := range seen {
		rest = append(rest, key)
	}
	sort.Strings(rest)
	ordered = append(ordered, rest...)

	columns := make([]TableColumn, 0, len(ordered))
	for _, key := range ordered {
		columns = append(columns, TableColumn{Key: key, Label: columnLabel(key, mapping)})
	}
	return columns
}

func columnLabel(key string, mapping map[string]string) string {
	if label, ok := mapping[key]; ok && label != "" {
		return label
	}
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func renderCards(title string, records []types.EmployeeRecord) *CardGridView {
	grid := &CardGridView{Title: title}

	allScored := len(records) > 0
	for _, rec := range records {
		if _, ok := rec.Score(); !ok {
			allScored = false
			break
		}
	}

	sorted := make([]types.EmployeeRecord, len(records))
	copy(sorted, records)
	if allScored {
		sort.SliceStable(sorted, func(i, j int) bool {
			si, _ := sorted[i].Score()
			sj, _ := sorted[j].Score()
			return si > sj
		})
	}

	for _, rec := range sorted {
		card := CardView{
			ID:          rec.ID(),
			Name:        rec.DisplayName(),
			Designation: rec.GetString("designation"),
			Department:  rec.Department(),
			Location:    rec.GetString("emp_location"),
			Status:      rec.Status(),
			Skills:      rec.Skills(),
			Reason:      rec.GetString("reason"),
		}
		if score, ok := rec.Score(); ok {
			s := score
			card.Score = &s
			card.Band = ScoreBand(score)
		}
		grid.Cards = append(grid.Cards, card)
	}
	return grid
}

func renderMetrics(title string, records []types.EmployeeRecord) *MetricsView {
	active, freepool := 0, 0
	for _, rec := range records {
		switch rec.Status() {
		case "Active":
			active++
		case "Freepool":
			freepool++
		}
	}
	return &MetricsView{
		Title: title,
		Tiles: []MetricTile{
			{Label: "Total", Value: len(records)},
			{Label: "Active", Value: active},
			{Label: "Freepool", Value: freepool},
		},
	}
}

func resolveSequence(field string, records []types.EmployeeRecord) []types.EmployeeRecord {
	if field == types.DataFieldSingle {
		if len(records) == 0 {
			return nil
		}
		return records[:1]
	}
	return records
}

func firstRecord(field string, records []types.EmployeeRecord) types.EmployeeRecord {
	_ = field // single binding is the only valid profile binding after repair
	if len(records) == 0 {
		return nil
	}
	return records[0]
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	}
	return nil
}

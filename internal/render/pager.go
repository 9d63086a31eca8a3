package render

// PageSizes are the selectable table page sizes.
var PageSizes = []int{5, 10, 25, 50, 100}

// DefaultPageSize is the initial table page size.
const DefaultPageSize = 10

// Pager tracks client-side pagination state for a table. Pages are 1-based.
type Pager struct {
	TotalRows int `json:"totalRows"`
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
}

// NewPager creates a pager on its first page with the default page size.
func NewPager(totalRows int) Pager {
	p := Pager{TotalRows: totalRows, Page: 1, PageSize: DefaultPageSize}
	p.PageCount = pageCount(totalRows, p.PageSize)
	return p
}

// SetPage jumps to the given page, clamping into the valid range.
func (p *Pager) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if page > p.PageCount {
		page = p.PageCount
	}
	if page < 1 {
		page = 1
	}
	p.Page = page
}

// SetPageSize changes the page size, snapping to the nearest allowed value,
// and returns to the first page.
func (p *Pager) SetPageSize(size int) {
	allowed := PageSizes[0]
	for _, s := range PageSizes {
		if s <= size {
			allowed = s
		}
	}
	p.PageSize = allowed
	p.PageCount = pageCount(p.TotalRows, p.PageSize)
	p.Page = 1
}

// Window returns the 0-based [start, end) row range of the current page.
func (p Pager) Window() (int, int) {
	start := (p.Page - 1) * p.PageSize
	if start > p.TotalRows {
		start = p.TotalRows
	}
	end := start + p.PageSize
	if end > p.TotalRows {
		end = p.TotalRows
	}
	return start, end
}

// PageRows returns the rows of the table's current page.
func (t *TableView) PageRows() []map[string]string {
	start, end := t.Pager.Window()
	return t.Rows[start:end]
}

func pageCount(total, size int) int {
	if size <= 0 {
		return 0
	}
	count := total / size
	if total%size != 0 {
		count++
	}
	if count == 0 {
		count = 1
	}
	return count
}

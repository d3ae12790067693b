package templates

// Tab identifies one of the dashboard tabs.
type Tab struct {
	ID     string
	Label  string
	Active bool
}

// TableView is a summary table already formatted for display.
type TableView struct {
	Columns []string
	Rows    [][]string
}

type DashboardData struct {
	Title       string
	Tabs        []Tab
	TabID       string
	Prompt      string
	Placeholder string
	Keys        []string
	Selected    string
	Table       TableView
	// FigureJSON is the chart figure serialized by encoding/json, which
	// escapes <, > and & so it is safe inside a script element.
	FigureJSON string
	Records    int
}

// ErrorPageData is shown when a page cannot be built.
type ErrorPageData struct {
	Status  int
	Message string
}

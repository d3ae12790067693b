package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"qbr-dash/internal/qbr"
	"qbr-dash/templates"
)

type tabSpec struct {
	id          string
	label       string
	mode        qbr.Mode
	prompt      string
	placeholder string
}

var tabs = []tabSpec{
	{id: "qb", label: "Quarterback Comparison", mode: qbr.ByPlayer, prompt: "Choose a Quarterback to Analyze", placeholder: "Select a Quarterback"},
	{id: "team", label: "Team Comparison", mode: qbr.ByTeam, prompt: "Choose a Team to Analyze", placeholder: "Select a Team"},
}

func findTab(id string) (tabSpec, bool) {
	if id == "" {
		return tabs[0], true
	}
	for _, t := range tabs {
		if t.id == id {
			return t, true
		}
	}
	return tabSpec{}, false
}

type column struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type summaryResponse struct {
	Mode    string           `json:"mode"`
	Key     string           `json:"key"`
	Columns []column         `json:"columns"`
	Data    []map[string]any `json:"data"`
}

type chartResponse struct {
	Mode   string           `json:"mode"`
	Key    string           `json:"key"`
	Points []qbr.ChartPoint `json:"points"`
	Figure qbr.Figure       `json:"figure"`
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	tab, ok := findTab(r.URL.Query().Get("tab"))
	if !ok {
		renderErrorPage(w, r, http.StatusBadRequest, "unknown tab "+strconv.Quote(r.URL.Query().Get("tab")))
		return
	}
	key := r.URL.Query().Get("key")

	keys, err := s.data.Keys(tab.mode)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	rows, err := s.summaries(r.Context(), key, tab.mode)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	table := qbr.NewTable(rows, tab.mode)
	figure, err := json.Marshal(qbr.NewFigure(key, qbr.NewChart(rows)))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	summariesServed.WithLabelValues(tab.mode.String(), "page").Inc()

	data := templates.DashboardData{
		Title:       "QBR vs. Passer Rating",
		TabID:       tab.id,
		Prompt:      tab.prompt,
		Placeholder: tab.placeholder,
		Keys:        keys,
		Selected:    key,
		Table:       tableView(table),
		FigureJSON:  string(figure),
		Records:     s.data.Len(),
	}
	for _, t := range tabs {
		data.Tabs = append(data.Tabs, templates.Tab{ID: t.id, Label: t.label, Active: t.id == tab.id})
	}

	templ.Handler(templates.Dashboard(data), templ.WithErrorHandler(s.renderFailed)).ServeHTTP(w, r)
}

func (s *Server) renderFailed(r *http.Request, err error) http.Handler {
	s.log.Error("rendering dashboard", zap.String("path", r.URL.Path), zap.Error(err))
	return templ.Handler(
		templates.ErrorPage(templates.ErrorPageData{
			Status:  http.StatusInternalServerError,
			Message: "Something went wrong building this page.",
		}),
		templ.WithStatus(http.StatusInternalServerError),
	)
}

func (s *Server) keysHandler(w http.ResponseWriter, r *http.Request) {
	mode, err := qbr.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	keys, err := s.data.Keys(mode)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"mode": mode.String(),
		"keys": keys,
	})
}

// summaryHandler serves the table variant in the columns/data shape a
// data-table widget binds to.
func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	mode, err := qbr.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	key := r.URL.Query().Get("key")

	rows, err := s.summaries(r.Context(), key, mode)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	table := qbr.NewTable(rows, mode)

	resp := summaryResponse{
		Mode: mode.String(),
		Key:  key,
		Data: table.Records(),
	}
	for _, c := range table.Columns {
		resp.Columns = append(resp.Columns, column{Name: c, ID: c})
	}
	summariesServed.WithLabelValues(mode.String(), "table").Inc()
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) chartHandler(w http.ResponseWriter, r *http.Request) {
	mode, err := qbr.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	key := r.URL.Query().Get("key")

	rows, err := s.summaries(r.Context(), key, mode)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	points := qbr.NewChart(rows)

	summariesServed.WithLabelValues(mode.String(), "chart").Inc()
	respondJSON(w, http.StatusOK, chartResponse{
		Mode:   mode.String(),
		Key:    key,
		Points: points,
		Figure: qbr.NewFigure(key, points),
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "qbr-dash",
		"records": s.data.Len(),
	})
}

func tableView(t qbr.Table) templates.TableView {
	v := templates.TableView{Columns: t.Columns}
	for _, r := range t.Rows {
		v.Rows = append(v.Rows, []string{
			strconv.Itoa(r.Year),
			r.QBR,
			r.PasserRating,
			strconv.Itoa(r.Count),
		})
	}
	return v
}

func (s *Server) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, qbr.ErrInvalidArgument) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	respondError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("page failed", zap.String("path", r.URL.Path), zap.Error(err))
	renderErrorPage(w, r, http.StatusInternalServerError, "Something went wrong building this page.")
}

func renderErrorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	page := templates.ErrorPage(templates.ErrorPageData{Status: status, Message: message})
	templ.Handler(page, templ.WithStatus(status)).ServeHTTP(w, r)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

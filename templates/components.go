package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const plotlyCDN = "https://cdn.plot.ly/plotly-2.35.2.min.js"

const pageStyle = `
body { background:#222; color:#fff; font-family:-apple-system,"Segoe UI",Roboto,sans-serif; margin:0; }
h1 { text-align:center; padding-top:1.5rem; }
.tabs { display:flex; border-bottom:1px solid #000; background:grey; }
.tabs a { flex:1; text-align:center; padding:.75rem; color:#fff; text-decoration:none; }
.tabs a.active { background:#000; }
.row { display:flex; gap:2rem; padding:1.5rem; flex-wrap:wrap; }
.col { flex:1; min-width:320px; }
select { width:100%; padding:.5rem; background:#151515; color:grey; border:1px solid #444; }
table { width:100%; border-collapse:collapse; margin-top:1.5rem; }
th { background:#151515; text-align:left; padding:.4rem; }
td { background:#000; color:#fff; text-align:left; padding:.4rem; border-top:1px solid #333; }
.empty { color:grey; margin-top:1.5rem; }
`

// Dashboard renders the full dashboard page.
func Dashboard(d DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!doctype html><html lang="en"><head><meta charset="UTF-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
		fmt.Fprintf(&b, `<title>%s</title>`, esc(d.Title))
		fmt.Fprintf(&b, `<style>%s</style>`, pageStyle)
		fmt.Fprintf(&b, `<script src="%s"></script></head><body>`, plotlyCDN)
		b.WriteString(`<h1>QBR Data Visualization</h1><nav class="tabs">`)
		for _, t := range d.Tabs {
			class := ""
			if t.Active {
				class = ` class="active"`
			}
			fmt.Fprintf(&b, `<a href="/?tab=%s"%s>%s</a>`, esc(t.ID), class, esc(t.Label))
		}
		b.WriteString(`</nav><div class="row"><div class="col">`)
		fmt.Fprintf(&b, `<p>%s</p>`, esc(d.Prompt))
		b.WriteString(`<form method="get" action="/">`)
		fmt.Fprintf(&b, `<input type="hidden" name="tab" value="%s">`, esc(d.TabID))
		b.WriteString(`<select name="key" onchange="this.form.submit()">`)
		fmt.Fprintf(&b, `<option value="">%s</option>`, esc(d.Placeholder))
		for _, k := range d.Keys {
			sel := ""
			if k == d.Selected {
				sel = " selected"
			}
			fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, esc(k), sel, esc(k))
		}
		b.WriteString(`</select></form>`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if err := SummaryTable(d.Table).Render(ctx, w); err != nil {
			return err
		}

		b.Reset()
		b.WriteString(`</div><div class="col"><div id="chart"></div>`)
		fmt.Fprintf(&b, `<script type="application/json" id="figure">%s</script>`, d.FigureJSON)
		b.WriteString(`<script>
(function () {
  const fig = JSON.parse(document.getElementById('figure').textContent);
  const traces = fig.traces.map(t => ({x: t.x, y: t.y, name: t.name, yaxis: t.yaxis, mode: t.mode, showlegend: t.showlegend, type: 'scatter'}));
  Plotly.newPlot('chart', traces, {
    title: {text: fig.title, x: 0.5},
    legend: {title: {text: fig.legend_title}},
    xaxis: {title: {text: fig.xaxis.title}, tickformat: fig.xaxis.tickformat, nticks: fig.xaxis.nticks},
    yaxis: {title: {text: fig.yaxis.title}, range: fig.yaxis.range},
    yaxis2: {title: {text: fig.yaxis2.title}, range: fig.yaxis2.range, overlaying: fig.yaxis2.overlaying, side: fig.yaxis2.side},
    paper_bgcolor: 'rgba(0,0,0,0)', plot_bgcolor: 'rgba(0,0,0,0)', font: {color: 'white'}
  }, {responsive: true});
})();
</script>`)
		b.WriteString(`</div></div>`)
		fmt.Fprintf(&b, `<footer class="empty" style="text-align:center">%d games loaded</footer>`, d.Records)
		b.WriteString(`</body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// SummaryTable renders the per-year table, or a placeholder when there
// are no rows.
func SummaryTable(t TableView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		if len(t.Rows) == 0 {
			b.WriteString(`<p class="empty" id="summary-empty">No data for this selection.</p>`)
			_, err := io.WriteString(w, b.String())
			return err
		}

		b.WriteString(`<table id="summary"><thead><tr>`)
		for _, c := range t.Columns {
			fmt.Fprintf(&b, `<th>%s</th>`, esc(c))
		}
		b.WriteString(`</tr></thead><tbody>`)
		for _, row := range t.Rows {
			b.WriteString(`<tr>`)
			for _, cell := range row {
				fmt.Fprintf(&b, `<td>%s</td>`, esc(cell))
			}
			b.WriteString(`</tr>`)
		}
		b.WriteString(`</tbody></table>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ErrorPage renders a minimal error page.
func ErrorPage(d ErrorPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!doctype html><html lang="en"><head><meta charset="UTF-8"><title>%d</title><style>%s</style></head><body><h1>%d</h1><p style="text-align:center">%s</p></body></html>`,
			d.Status, pageStyle, d.Status, esc(d.Message))
		return err
	})
}

func esc(s string) string {
	return templ.EscapeString(s)
}

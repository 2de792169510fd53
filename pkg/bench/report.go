package bench

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for an unsupported report format.
var ErrUnknownFormat = errors.New("unknown report format")

// Report output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Report is the outcome of a bench run.
type Report struct {
	ID           string    `json:"id"           yaml:"id"`
	CreatedAt    time.Time `json:"created_at"   yaml:"created_at"`
	Distribution string    `json:"distribution" yaml:"distribution"`
	Seed         uint64    `json:"seed"         yaml:"seed"`
	Rows         []Row     `json:"rows"         yaml:"rows"`
}

// NewReport creates an empty report with a fresh run id.
func NewReport(distribution string, seed uint64) *Report {
	return &Report{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Distribution: distribution,
		Seed:         seed,
	}
}

// Write renders the report in the given format.
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case FormatTable, "":
		return r.WriteTable(w)
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatYAML:
		return r.WriteYAML(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteTable renders one row per kernel and size.
func (r *Report) WriteTable(w io.Writer) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"Kernel", "Size", "Iterations", "Kernel ns/op", "Reference ns/op", "Speedup"})

	for _, row := range r.Rows {
		if row.Error != "" {
			tbl.AppendRow(table.Row{row.Kernel, humanize.Comma(int64(row.Size)), row.Iterations, row.Error, "", ""})

			continue
		}

		tbl.AppendRow(table.Row{
			row.Kernel,
			humanize.Comma(int64(row.Size)),
			row.Iterations,
			humanize.CommafWithDigits(row.KernelNs, 0),
			humanize.CommafWithDigits(row.ReferenceNs, 0),
			strconv.FormatFloat(row.Speedup, 'f', 2, 64) + "x",
		})
	}

	tbl.AppendFooter(table.Row{"Run " + r.ID, "", "", "", "", r.Distribution})

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}

// WriteJSON renders the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(r)
	if err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}

	return nil
}

// WriteYAML renders the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)

	err := enc.Encode(r)
	if err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	return enc.Close()
}

// WritePlot renders speedups as an HTML bar chart: kernels on the x axis,
// one series per input size.
func (r *Report) WritePlot(w io.Writer) error {
	var names []string

	var sizes []int

	for _, row := range r.Rows {
		if !slices.Contains(names, row.Kernel) {
			names = append(names, row.Kernel)
		}

		if !slices.Contains(sizes, row.Size) {
			sizes = append(sizes, row.Size)
		}
	}

	slices.Sort(sizes)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Kernel speedup over reference",
			Subtitle: fmt.Sprintf("run %s, %s inputs", r.ID, r.Distribution),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "speedup (x)"}),
	)
	bar.SetXAxis(names)

	for _, size := range sizes {
		data := make([]opts.BarData, len(names))

		for _, row := range r.Rows {
			if row.Size == size {
				data[slices.Index(names, row.Kernel)] = opts.BarData{Value: row.Speedup}
			}
		}

		bar.AddSeries("n="+humanize.Comma(int64(size)), data)
	}

	err := bar.Render(w)
	if err != nil {
		return fmt.Errorf("render plot: %w", err)
	}

	return nil
}

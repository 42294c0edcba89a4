package diagram

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/agbru/hassecalc/internal/algebra"
)

// Default canvas size.
const (
	DefaultWidth  = 4 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

var (
	nodeColor  = color.RGBA{R: 100, G: 150, B: 200, A: 255}
	edgeColor  = color.Gray{Y: 60}
	labelColor = color.Gray{Y: 110}
)

// Formats lists the file extensions Export accepts.
func Formats() []string { return []string{"svg", "png", "pdf", "eps", "jpg", "tif"} }

// Plot builds the gonum plot of d. Levels are labelled "(p)" on the left
// of their first symbol.
func Plot(d Diagram, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()

	if d.Empty() {
		return p, nil
	}

	for _, e := range d.Edges {
		from, _ := d.Point(e.From)
		to, _ := d.Point(e.To)
		line, err := plotter.NewLine(plotter.XYs{{X: from.X, Y: from.Y}, {X: to.X, Y: to.Y}})
		if err != nil {
			return nil, fmt.Errorf("edge %v->%v: %w", e.From, e.To, err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = edgeColor
		p.Add(line)
	}
	for _, path := range [][]Point{pathOrNil(d.TopBar()), pathOrNil(d.Cycle())} {
		if path == nil {
			continue
		}
		line, err := plotter.NewLine(toXYs(path))
		if err != nil {
			return nil, fmt.Errorf("cycle edge: %w", err)
		}
		line.LineStyle.Width = vg.Points(1)
		line.LineStyle.Color = edgeColor
		line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(line)
	}

	var (
		nodes      plotter.XYs
		names      []string
		levelXYs   plotter.XYs
		levelNames []string
	)
	for _, lvl := range d.Levels {
		for i, s := range lvl.Symbols {
			pt, _ := d.Point(s)
			nodes = append(nodes, plotter.XY{X: pt.X, Y: pt.Y})
			names = append(names, s.String())
			if i == 0 {
				levelXYs = append(levelXYs, plotter.XY{X: pt.X - Spacing/2, Y: pt.Y})
				levelNames = append(levelNames, fmt.Sprintf("(%d)", lvl.Position))
			}
		}
	}

	scatter, err := plotter.NewScatter(nodes)
	if err != nil {
		return nil, fmt.Errorf("nodes: %w", err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(9)
	scatter.GlyphStyle.Color = nodeColor
	p.Add(scatter)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: nodes, Labels: names})
	if err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = color.White
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(labels)

	positions, err := plotter.NewLabels(plotter.XYLabels{XYs: levelXYs, Labels: levelNames})
	if err != nil {
		return nil, fmt.Errorf("position labels: %w", err)
	}
	for i := range positions.TextStyle {
		positions.TextStyle[i].Color = labelColor
		positions.TextStyle[i].XAlign = draw.XRight
		positions.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(positions)

	lo, hi := d.Bounds()
	p.X.Min, p.X.Max = lo.X-Spacing, hi.X+Spacing/2
	p.Y.Min, p.Y.Max = lo.Y-0.5, hi.Y+0.5
	return p, nil
}

func pathOrNil(path []Point, ok bool) []Point {
	if !ok {
		return nil
	}
	return path
}

func toXYs(path []Point) plotter.XYs {
	xys := make(plotter.XYs, len(path))
	for i, pt := range path {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return xys
}

// Title returns the default caption for a's diagram.
func Title(a *algebra.Algebra) string {
	return fmt.Sprintf("Hasse diagram: %s (cycle %d)", a.Rule(), a.CycleLength())
}

// Export writes the diagram of a to path. The format is taken from the
// extension.
//
// Parameters:
//   - a: The algebra to draw.
//   - path: Destination file; see Formats for the accepted extensions.
//
// Returns:
//   - error: An error if the format is unknown or the file cannot be written.
func Export(a *algebra.Algebra, path string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !supported(ext) {
		return fmt.Errorf("unsupported diagram format %q (want one of %s)", ext, strings.Join(Formats(), ", "))
	}
	p, err := Plot(Layout(a), Title(a))
	if err != nil {
		return err
	}
	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return fmt.Errorf("save diagram: %w", err)
	}
	return nil
}

// WriteTo renders the diagram of a in format ("svg", "png", ...) to w.
func WriteTo(w io.Writer, a *algebra.Algebra, format string) error {
	if !supported(format) {
		return fmt.Errorf("unsupported diagram format %q", format)
	}
	p, err := Plot(Layout(a), Title(a))
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(DefaultWidth, DefaultHeight, format)
	if err != nil {
		return fmt.Errorf("render diagram: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func supported(format string) bool {
	for _, f := range Formats() {
		if f == format {
			return true
		}
	}
	return false
}

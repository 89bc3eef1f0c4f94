// Package export renders the training results to PNG files: the loss
// history and each metric component overlaid with the closed-form solution.
package export

import (
	"bufio"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/lvb5/solve-PDEs-with-PINN/internal/train"
)

var (
	predColor     = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	analyticColor = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// SaveAll writes loss.png, A.png and B.png into outDir, creating it if
// needed.
func SaveAll(outDir string, history []float64, ev *train.Evaluation) error {
	if err := SaveLossPlot(outDir, history); err != nil {
		return err
	}
	if err := SaveFieldPlot(outDir, "A.png", "Metric component A(r)", ev.R, ev.PredA, ev.AnaA); err != nil {
		return err
	}
	return SaveFieldPlot(outDir, "B.png", "Metric component B(r)", ev.R, ev.PredB, ev.AnaB)
}

// SaveLossPlot renders the per-iteration training loss on a log y axis.
func SaveLossPlot(outDir string, history []float64) error {
	if len(history) == 0 {
		return fmt.Errorf("export: empty loss history")
	}

	p := plot.New()
	p.Title.Text = "Training loss"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "loss"
	stylePlot(p)

	if positive(history) {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{}
	}

	pts := make(plotter.XYs, len(history))
	for i, l := range history {
		pts[i].X = float64(i + 1)
		pts[i].Y = l
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2.0)
	line.LineStyle.Color = predColor
	p.Add(line)

	return savePNG(p, filepath.Join(outDir, "loss.png"))
}

// SaveFieldPlot overlays a predicted field with its closed-form counterpart.
func SaveFieldPlot(outDir, filename, title string, r, pred, analytic []float64) error {
	if len(r) == 0 || len(r) != len(pred) || len(r) != len(analytic) {
		return fmt.Errorf("export: field plot data length mismatch")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "r (AU)"
	p.Y.Label.Text = "value"
	stylePlot(p)
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(13)

	predLine, err := plotter.NewLine(toXYs(r, pred))
	if err != nil {
		return err
	}
	predLine.LineStyle.Width = vg.Points(2.5)
	predLine.LineStyle.Color = predColor

	anaLine, err := plotter.NewLine(toXYs(r, analytic))
	if err != nil {
		return err
	}
	anaLine.LineStyle.Width = vg.Points(2.0)
	anaLine.LineStyle.Color = analyticColor
	anaLine.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}

	p.Add(predLine, anaLine)
	p.Legend.Add("network", predLine)
	p.Legend.Add("analytic", anaLine)

	return savePNG(p, filepath.Join(outDir, filename))
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)

	p.X.Label.TextStyle.Font.Size = vg.Points(13)
	p.Y.Label.TextStyle.Font.Size = vg.Points(13)
	p.X.Label.Padding = vg.Points(6)
	p.Y.Label.Padding = vg.Points(6)

	p.X.Tick.Label.Font.Size = vg.Points(11)
	p.Y.Tick.Label.Font.Size = vg.Points(11)

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{Y: 220}
	grid.Horizontal.Color = color.Gray{Y: 220}
	p.Add(grid)
}

func savePNG(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	c := vgimg.NewWith(
		vgimg.UseWH(8*vg.Inch, 6*vg.Inch),
		vgimg.UseDPI(150),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	defer bw.Flush()

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(bw); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

func toXYs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

func positive(vals []float64) bool {
	for _, v := range vals {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	MinDPI     = 300
	MaxDPI     = 400
	DefaultDPI = MaxDPI

	pngWidth  = 6.4 * vg.Inch
	pngHeight = 4.8 * vg.Inch
)

var areaFill = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// PNG saves each chart to Dir/Filename.
type PNG struct {
	Dir string
	DPI int
}

func NewPNG(dir string, dpi int) (*PNG, error) {
	if dpi < MinDPI || dpi > MaxDPI {
		return nil, fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidDPI, dpi, MinDPI, MaxDPI)
	}
	return &PNG{Dir: dir, DPI: dpi}, nil
}

func (p *PNG) Render(charts ...Chart) error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, c := range charts {
		if err := p.save(c); err != nil {
			return fmt.Errorf("save %s: %w", c.Filename, err)
		}
	}
	return nil
}

// Path returns where a chart is written.
func (p *PNG) Path(c Chart) string {
	return filepath.Join(p.Dir, c.Filename)
}

func (p *PNG) save(c Chart) error {
	pl, err := build(c)
	if err != nil {
		return err
	}

	canvas := vgimg.NewWith(vgimg.UseWH(pngWidth, pngHeight), vgimg.UseDPI(p.DPI))
	pl.Draw(draw.New(canvas))

	f, err := os.Create(p.Path(c))
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func build(c Chart) (*plot.Plot, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	pl := plot.New()
	pl.Title.Text = c.Title
	pl.X.Label.Text = c.XLabel
	pl.Y.Label.Text = c.YLabel
	pl.Legend.Top = true

	switch c.Kind {
	case Bar:
		if err := addBars(pl, c); err != nil {
			return nil, err
		}
	case Area:
		if err := addArea(pl, c); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown chart kind %d", c.Kind)
	}

	pl.NominalX(c.Categories...)
	return pl, nil
}

func addBars(pl *plot.Plot, c Chart) error {
	w := vg.Points(80 / float64(len(c.Series)))
	for i, s := range c.Series {
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), w)
		if err != nil {
			return err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = w * vg.Length(float64(i)-float64(len(c.Series)-1)/2)
		pl.Add(bars)
		pl.Legend.Add(s.Label, bars)
	}
	return nil
}

func addArea(pl *plot.Plot, c Chart) error {
	for i, s := range c.Series {
		pts := make(plotter.XYs, len(s.Values))
		for j, v := range s.Values {
			pts[j].X = float64(j)
			pts[j].Y = v
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		line.FillColor = areaFill
		pl.Add(line)
	}
	return nil
}

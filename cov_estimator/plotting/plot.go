// Package plotting renders the observed histogram against the fitted model
// curves so an estimate can be judged by eye.
package plotting

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"Kmer-Coverage-Estimation/cov_estimator/common"
	"Kmer-Coverage-Estimation/cov_estimator/model"
)

// Save writes a figure comparing the histogram's observed multiplicity
// shares with the model's probability curves at the estimated, guessed and,
// when supplied, original parameters.
func Save(m *model.Model, counts []int64, estimated, guessed common.Params, original *common.Params, path string) error {
	total := 0.0
	for _, cnt := range counts {
		total += float64(cnt)
	}
	if total == 0 {
		return errors.New("empty histogram, nothing to plot")
	}

	observed := make(plotter.XYs, len(counts))
	for j, cnt := range counts {
		observed[j] = plotter.XY{X: float64(j), Y: float64(cnt) / total}
	}

	p := plot.New()
	p.Title.Text = "k-mer multiplicity: observed vs. fitted"
	p.X.Label.Text = "multiplicity"
	p.Y.Label.Text = "share"

	items := []interface{}{
		"hist", observed,
		label("est", estimated), curve(m, estimated, len(counts)),
		label("guess", guessed), curve(m, guessed, len(counts)),
	}
	if original != nil {
		items = append(items, label("orig", *original), curve(m, *original, len(counts)))
	}
	if err := plotutil.AddScatters(p, items...); err != nil {
		return errors.Wrap(err, "add plot series")
	}
	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}

func curve(m *model.Model, params common.Params, size int) plotter.XYs {
	probs := m.Probabilities(params.Coverage, params.ErrorRate, size)
	xys := make(plotter.XYs, size)
	for j := 0; j < size; j++ {
		xys[j] = plotter.XY{X: float64(j), Y: probs[j]}
	}
	return xys
}

func label(name string, p common.Params) string {
	return fmt.Sprintf("%s: C:%.3f E:%.3f", name, p.Coverage, p.ErrorRate)
}

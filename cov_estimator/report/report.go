// Package report turns final estimator parameters into the structured JSON
// record printed at the end of a run.
package report

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Loglikelihood is a float64 that survives JSON encoding when it is -Inf,
// which a rejected or degenerate parameter point legitimately produces.
// Non-finite values encode as strings ("-Inf", "Inf", "NaN").
type Loglikelihood float64

// MarshalJSON implements json.Marshaler.
func (l Loglikelihood) MarshalJSON() ([]byte, error) {
	f := float64(l)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.AppendQuote(nil, strconv.FormatFloat(f, 'g', -1, 64)), nil
	}
	return json.Marshal(f)
}

// Result is the estimation record. Fields are ordered so the encoded keys
// come out sorted; the original-* and estimated-q* fields appear only when
// ground truth was supplied or the repeat model was in use.
type Result struct {
	EstimatedCoverage      float64       `json:"estimated_coverage"`
	EstimatedErrorRate     float64       `json:"estimated_error_rate"`
	EstimatedLoglikelihood Loglikelihood `json:"estimated_loglikelihood"`

	EstimatedQ  *float64 `json:"estimated_q,omitempty"`
	EstimatedQ1 *float64 `json:"estimated_q1,omitempty"`
	EstimatedQ2 *float64 `json:"estimated_q2,omitempty"`

	GuessedCoverage      float64       `json:"guessed_coverage"`
	GuessedErrorRate     float64       `json:"guessed_error_rate"`
	GuessedLoglikelihood Loglikelihood `json:"guessed_loglikelihood"`

	OriginalErrorRate     *float64       `json:"original_error_rate,omitempty"`
	OriginalLoglikelihood *Loglikelihood `json:"original_loglikelihood,omitempty"`
}

// WriteJSON writes the indented record followed by a newline.
func (r *Result) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return errors.Wrap(err, "encode result")
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return errors.Wrap(err, "write result")
}

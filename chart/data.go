// Package chart computes and animates a bar chart from an ordered set of
// (label, value) pairs. The Renderer owns the chart lifecycle and produces
// Frames that surfaces (SVG, HTML, terminal) draw.
package chart

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// DataPoint is a single bar: a category label and its value.
type DataPoint struct {
	Label string
	Value float64
}

// Dataset is an ordered sequence of points. Order defines bar placement.
type Dataset []DataPoint

// Pairs zips parallel label and value slices, truncating to the shorter one.
func Pairs(labels []string, values []float64) Dataset {
	n := len(labels)
	if len(values) < n {
		n = len(values)
	}
	d := make(Dataset, n)
	for i := 0; i < n; i++ {
		d[i] = DataPoint{Label: labels[i], Value: values[i]}
	}
	return d
}

// Labels returns the distinct labels in first-occurrence order.
func (d Dataset) Labels() []string {
	seen := make(map[string]struct{}, len(d))
	labels := make([]string, 0, len(d))
	for _, p := range d {
		if _, ok := seen[p.Label]; ok {
			continue
		}
		seen[p.Label] = struct{}{}
		labels = append(labels, p.Label)
	}
	return labels
}

// Max returns the largest value, or 0 for an empty dataset.
func (d Dataset) Max() float64 {
	if len(d) == 0 {
		return 0
	}
	m := d[0].Value
	for _, p := range d[1:] {
		if p.Value > m {
			m = p.Value
		}
	}
	return m
}

// Validate rejects values that would produce NaN geometry.
// Negative values are accepted and drawn as zero-length bars.
func (d Dataset) Validate() error {
	for i, p := range d {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return &ValidationError{Index: i, Label: p.Label, Value: p.Value}
		}
	}
	return nil
}

// Clone returns a copy that does not share the backing array.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	c := make(Dataset, len(d))
	copy(c, d)
	return c
}

// MarshalJSON encodes the point as a ["label", value] pair.
func (p DataPoint) MarshalJSON() ([]byte, error) {
	label, err := json.Marshal(p.Label)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	b.WriteByte('[')
	b.Write(label)
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(p.Value, 'g', -1, 64))
	b.WriteByte(']')
	return b.Bytes(), nil
}

// UnmarshalJSON accepts either a ["label", value] pair or a
// {"label": ..., "value": ...} object.
func (p *DataPoint) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			Label json.RawMessage `json:"label"`
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		return p.decode(obj.Label, obj.Value)
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return errors.Wrap(err, "data point")
	}
	if len(pair) != 2 {
		return errors.Errorf("data point: want [label, value], got %d elements", len(pair))
	}
	return p.decode(pair[0], pair[1])
}

func (p *DataPoint) decode(label, value json.RawMessage) error {
	if len(label) == 0 || len(value) == 0 {
		return errors.New("data point: missing label or value")
	}

	var s string
	if err := json.Unmarshal(label, &s); err != nil {
		// numeric or boolean labels keep their literal text
		s = string(bytes.TrimSpace(label))
	}

	var v float64
	if err := json.Unmarshal(value, &v); err != nil {
		var vs string
		if json.Unmarshal(value, &vs) != nil {
			return errors.Wrapf(err, "data point %q: value", s)
		}
		v, err = strconv.ParseFloat(vs, 64)
		if err != nil {
			return errors.Wrapf(err, "data point %q: value", s)
		}
	}

	p.Label = s
	p.Value = v
	return nil
}

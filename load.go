package main

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kyleleelarson/barchart/chart"
	"github.com/pkg/errors"
)

// loadDataset reads a dataset file. Files ending in .csv hold label,value
// rows; anything else is a JSON array of [label, value] pairs.
func loadDataset(path string) (chart.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := decodeDataset(f, formatOf(path))
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return data, nil
}

func formatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return "csv"
	}
	return "json"
}

func decodeDataset(r io.Reader, format string) (chart.Dataset, error) {
	var (
		data chart.Dataset
		err  error
	)
	switch format {
	case "csv":
		data, err = decodeCSV(r)
	case "json", "":
		err = json.NewDecoder(r).Decode(&data)
	default:
		return nil, errors.Errorf("unknown dataset format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = chart.Dataset{}
	}
	return data, data.Validate()
}

// labelColumns are the first-column names recognised in a CSV header.
var labelColumns = map[string]bool{
	"label":    true,
	"name":     true,
	"category": true,
	"key":      true,
}

// decodeCSV reads label,value rows. The first row is a header when it names
// the label column and its value does not parse.
func decodeCSV(r io.Reader) (chart.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	var data chart.Dataset
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return data, nil
		}
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			if line == 1 && labelColumns[strings.ToLower(strings.TrimSpace(rec[0]))] {
				continue
			}
			return nil, errors.Wrapf(err, "line %d", line)
		}
		data = append(data, chart.DataPoint{Label: rec[0], Value: v})
	}
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package shopping

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("linkrank.shopping")

// Columns lists the CSV header in order. The first 17 are evidence, the
// last is the label.
var Columns = []string{
	"Administrative",
	"Administrative_Duration",
	"Informational",
	"Informational_Duration",
	"ProductRelated",
	"ProductRelated_Duration",
	"BounceRates",
	"ExitRates",
	"PageValues",
	"SpecialDay",
	"Month",
	"OperatingSystems",
	"Browser",
	"Region",
	"TrafficType",
	"VisitorType",
	"Weekend",
	"Revenue",
}

// FeatureCount is the width of one evidence vector.
const FeatureCount = 17

type columnKind int

const (
	kindInt columnKind = iota
	kindFloat
	kindMonth
	kindVisitor
	kindBool
)

var columnKinds = [...]columnKind{
	kindInt, kindFloat, kindInt, kindFloat, kindInt, kindFloat,
	kindFloat, kindFloat, kindFloat, kindFloat,
	kindMonth,
	kindInt, kindInt, kindInt, kindInt,
	kindVisitor,
	kindBool,
	kindBool,
}

var months = map[string]int{
	"Jan": 0, "Feb": 1, "Mar": 2, "Apr": 3, "May": 4, "June": 5,
	"Jul": 6, "Aug": 7, "Sep": 8, "Oct": 9, "Nov": 10, "Dec": 11,
}

// Dataset holds evidence vectors and their purchase labels.
//
// Labels[i] is 1 when session i ended in a purchase and 0 otherwise.
type Dataset struct {
	Evidence [][]float64
	Labels   []int
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Labels)
}

// Positives returns how many rows are labelled 1.
func (d *Dataset) Positives() int {
	n := 0
	for _, l := range d.Labels {
		n += l
	}
	return n
}

// LoadData parses shopping sessions from CSV.
//
// Description:
//
//	The first row must be the header in Columns. Each following row becomes
//	one evidence vector and one label. Integer columns must parse as
//	integers and float columns as floats. Month is mapped Jan=0 through
//	Dec=11 ("June" is spelled out in the export). VisitorType is 1 for
//	"Returning_Visitor" and 0 otherwise. Weekend and Revenue are 1 for TRUE.
//
// Outputs:
//
//   - *Dataset: One entry per data row. May be empty.
//   - error: ErrBadHeader, a *RowError for the first malformed row, or a
//     read error.
func LoadData(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Columns)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header", ErrBadHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	for i, name := range header {
		if strings.TrimSpace(name) != Columns[i] {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i+1, name, Columns[i])
		}
	}

	ds := &Dataset{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &RowError{Line: parseErr.Line, Err: parseErr.Err}
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		evidence, label, err := parseRow(record)
		if err != nil {
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				rowErr.Line = line
			}
			return nil, err
		}
		ds.Evidence = append(ds.Evidence, evidence)
		ds.Labels = append(ds.Labels, label)
	}

	return ds, nil
}

func parseRow(record []string) ([]float64, int, error) {
	values := make([]float64, len(record))
	for i, field := range record {
		v, err := parseField(columnKinds[i], strings.TrimSpace(field))
		if err != nil {
			return nil, 0, &RowError{Column: Columns[i], Err: err}
		}
		values[i] = v
	}
	return values[:FeatureCount], int(values[FeatureCount]), nil
}

func parseField(kind columnKind, field string) (float64, error) {
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(field)
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	case kindFloat:
		return strconv.ParseFloat(field, 64)
	case kindMonth:
		m, ok := months[field]
		if !ok {
			return 0, fmt.Errorf("unknown month %q", field)
		}
		return float64(m), nil
	case kindVisitor:
		if field == "Returning_Visitor" {
			return 1, nil
		}
		return 0, nil
	case kindBool:
		b, err := strconv.ParseBool(field)
		if err != nil {
			return 0, err
		}
		if b {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("unknown column kind %d", kind)
	}
}

// LoadFile opens path and parses it with LoadData.
func LoadFile(ctx context.Context, path string) (*Dataset, error) {
	_, span := tracer.Start(ctx, "shopping.LoadFile",
		trace.WithAttributes(attribute.String("path", path)),
	)
	defer span.End()

	f, err := os.Open(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return nil, fmt.Errorf("open data: %w", err)
	}
	defer f.Close()

	ds, err := LoadData(f)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	slog.Debug("Shopping data loaded",
		slog.String("path", path),
		slog.Int("rows", ds.Len()),
		slog.Int("positives", ds.Positives()),
	)
	span.SetAttributes(attribute.Int("rows", ds.Len()))

	return ds, nil
}

package chart

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/maroof-insights/storefront-dashboard/internal/analysis"
)

func TestWritePNG(t *testing.T) {
	fig := DefaultRenderer().BusinessMix(mixRows(), analysis.SortByTotal, 10)

	var buf bytes.Buffer
	if err := WritePNG(fig, &buf); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestWritePNGSingleBar(t *testing.T) {
	fig := DefaultRenderer().BusinessMix(mixRows()[:1], analysis.SortByTotal, 1)

	var buf bytes.Buffer
	if err := WritePNG(fig, &buf); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
}

func TestWritePNGRejects(t *testing.T) {
	r := DefaultRenderer()
	var buf bytes.Buffer

	if err := WritePNG(r.Annotation("x", 14), &buf); !errors.Is(err, ErrNothingToRender) {
		t.Errorf("annotation: got %v", err)
	}
	empty := r.BusinessMix(nil, analysis.SortByTotal, 10)
	if err := WritePNG(empty, &buf); !errors.Is(err, ErrNothingToRender) {
		t.Errorf("empty bars: got %v", err)
	}
	heat := Figure{Data: []Trace{{Type: "heatmap"}}}
	if err := WritePNG(heat, &buf); !errors.Is(err, ErrUnsupportedFigure) {
		t.Errorf("heatmap: got %v", err)
	}
}

func TestWriteBusinessMixXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBusinessMixXLSX(mixRows(), ArabicLabels(), &buf); err != nil {
		t.Fatalf("WriteBusinessMixXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(mixSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "A" || rows[1][1] != "2" || rows[2][0] != "B" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestSetRowReportsErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if err := setRow(f, mixSheet, 0, []any{"x"}); err == nil {
		t.Error("row 0 is not addressable and should fail")
	}
	if err := setRow(f, "Missing", 1, []any{"x"}); err == nil {
		t.Error("writing to a missing sheet should fail")
	}
	if err := setRow(f, mixSheet, 2, []any{"x", 3}); err != nil {
		t.Fatalf("setRow() error = %v", err)
	}
	if v, _ := f.GetCellValue(mixSheet, "B2"); v != "3" {
		t.Errorf("B2 = %q, want 3", v)
	}
}

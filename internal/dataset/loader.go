package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"github.com/maroof-insights/storefront-dashboard/internal/models"
)

// Source columns
const (
	ColBusinessType = "business_type_ar"
	ColOtherType    = "other_type_name"
	ColName         = "name_ar"
	ColDescription  = "description"
	ColRating       = "rating"
	ColTotalReviews = "total_reviews"
)

var (
	// ErrEmptySource is returned when the source has no header or no rows
	ErrEmptySource = errors.New("dataset source is empty")

	// ErrMissingColumn is returned when a required column is absent
	ErrMissingColumn = errors.New("required column missing")
)

var requiredColumns = []string{ColName, ColRating, ColTotalReviews}

// naValues are the cell values read as missing
var naValues = []string{"", "NA", "N/A", "NaN", "nan", "None", "none", "null", "NULL", "<nil>"}

var utf8BOM = []byte("\xef\xbb\xbf")

// Loader reads the source table from a URL or a local file
type Loader struct {
	client *http.Client
	sheet  string
}

// NewLoader creates a loader whose downloads give up after timeout. sheet
// selects the worksheet of XLSX sources; empty means the first sheet.
func NewLoader(timeout time.Duration, sheet string) *Loader {
	return &Loader{
		client: &http.Client{Timeout: timeout},
		sheet:  sheet,
	}
}

// Fetch downloads a CSV export and parses it
func (l *Loader) Fetch(ctx context.Context, url string) (*Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	start := time.Now()
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to download dataset: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset body: %w", err)
	}
	log.Printf("[Loader] downloaded %d bytes in %v", len(body), time.Since(start))

	return ReadCSV(bytes.NewReader(body), url)
}

// LoadFile reads a local .csv or .xlsx file
func (l *Loader) LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(f, l.sheet, path)
	case ".csv", ".txt":
		return ReadCSV(f, path)
	default:
		return nil, fmt.Errorf("unsupported dataset file type: %s", filepath.Ext(path))
	}
}

// ReadCSV parses a CSV stream with a header row. Every column is read as
// text and converted per field afterwards.
func ReadCSV(r io.Reader, source string) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	raw = bytes.TrimSpace(bytes.TrimPrefix(raw, utf8BOM))
	if len(raw) == 0 || !bytes.Contains(raw, []byte("\n")) {
		return nil, ErrEmptySource
	}

	df := dataframe.ReadCSV(bytes.NewReader(raw),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", df.Err)
	}
	return FromDataFrame(df, source)
}

// ReadXLSX reads one worksheet of a workbook. Short rows are padded to the
// header width.
func ReadXLSX(r io.Reader, sheet, source string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptySource
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySource
	}

	width := len(rows[0])
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		padded := make([]string, width)
		copy(padded, row)
		records = append(records, padded)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to load sheet %q: %w", sheet, df.Err)
	}
	return FromDataFrame(df, source)
}

// FromDataFrame converts a text DataFrame into a Table. Optional columns may
// be absent; unparsable numbers become missing values.
func FromDataFrame(df dataframe.DataFrame, source string) (*Table, error) {
	columns := make(map[string]series.Series)
	for _, name := range df.Names() {
		columns[strings.TrimSpace(name)] = df.Col(name)
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	if df.Nrow() == 0 {
		return nil, ErrEmptySource
	}

	cell := func(col string, i int) *string {
		s, ok := columns[col]
		if !ok {
			return nil
		}
		e := s.Elem(i)
		if e.IsNA() {
			return nil
		}
		v := e.String()
		return &v
	}

	records := make([]models.StoreRecord, df.Nrow())
	skipped := 0
	for i := range records {
		r := models.StoreRecord{
			BusinessType: cell(ColBusinessType, i),
			OtherType:    cell(ColOtherType, i),
			Description:  cell(ColDescription, i),
			Rating:       parseFloat(cell(ColRating, i)),
			TotalReviews: parseCount(cell(ColTotalReviews, i)),
		}
		if name := cell(ColName, i); name != nil {
			r.Name = *name
		}
		if r.Rating == nil && r.TotalReviews == nil {
			skipped++
		}
		records[i] = r
	}
	if skipped > 0 {
		log.Printf("[Loader] %d of %d rows have neither rating nor review count", skipped, len(records))
	}

	return NewTable(source, records), nil
}

func parseFloat(v *string) *float64 {
	if v == nil {
		return nil
	}
	s := strings.ReplaceAll(strings.TrimSpace(*v), ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// parseCount accepts "1,234" and float-formatted counts such as "12.0"
func parseCount(v *string) *int64 {
	f := parseFloat(v)
	if f == nil || *f < 0 {
		return nil
	}
	n := int64(math.Round(*f))
	return &n
}

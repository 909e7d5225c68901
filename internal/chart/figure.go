// Package chart maps aggregated tables and density grids onto chart
// descriptions. Figures serialize to the JSON shape Plotly.js accepts.
package chart

// Figure is a complete chart: traces plus layout
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// AnnotationOnly reports whether the figure carries a message instead of data
func (f Figure) AnnotationOnly() bool {
	return len(f.Data) == 0 && len(f.Layout.Annotations) > 0
}

// Trace is one bar series or heatmap. For horizontal bars X holds []float64
// values and Y holds []string labels; for heatmaps both hold bin centers.
type Trace struct {
	Type          string      `json:"type"`
	Name          string      `json:"name,omitempty"`
	Orientation   string      `json:"orientation,omitempty"`
	X             any         `json:"x,omitempty"`
	Y             any         `json:"y,omitempty"`
	Z             [][]float64 `json:"z,omitempty"`
	Text          any         `json:"text,omitempty"`
	TextPosition  string      `json:"textposition,omitempty"`
	HoverText     []string    `json:"hovertext,omitempty"`
	HoverTemplate string      `json:"hovertemplate,omitempty"`
	Marker        *Marker     `json:"marker,omitempty"`
	Width         float64     `json:"width,omitempty"`
	ColorScale    [][]any     `json:"colorscale,omitempty"`
	ColorBar      *ColorBar   `json:"colorbar,omitempty"`
	ZMin          *float64    `json:"zmin,omitempty"`
	ZMax          *float64    `json:"zmax,omitempty"`
	ShowScale     *bool       `json:"showscale,omitempty"`
}

type Marker struct {
	Color string `json:"color"`
}

type ColorBar struct {
	Title      *Title `json:"title,omitempty"`
	TickFormat string `json:"tickformat,omitempty"`
}

// Layout is the figure-level styling
type Layout struct {
	Title       *Title       `json:"title,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	BarMode     string       `json:"barmode,omitempty"`
	Height      int          `json:"height,omitempty"`
	Margin      *Margin      `json:"margin,omitempty"`
	Legend      *Legend      `json:"legend,omitempty"`
	HoverLabel  *HoverLabel  `json:"hoverlabel,omitempty"`
	Font        *Font        `json:"font,omitempty"`
	PlotBGColor string       `json:"plot_bgcolor,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

type Title struct {
	Text string `json:"text"`
	Font *Font  `json:"font,omitempty"`
}

type Axis struct {
	Title         *Title `json:"title,omitempty"`
	CategoryOrder string `json:"categoryorder,omitempty"`
	TickFormat    string `json:"tickformat,omitempty"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type Legend struct {
	Title       *Title  `json:"title,omitempty"`
	Orientation string  `json:"orientation,omitempty"`
	YAnchor     string  `json:"yanchor,omitempty"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"xanchor,omitempty"`
	X           float64 `json:"x"`
}

type HoverLabel struct {
	BGColor string `json:"bgcolor,omitempty"`
	Font    *Font  `json:"font,omitempty"`
	Align   string `json:"align,omitempty"`
}

type Font struct {
	Family string `json:"family,omitempty"`
	Size   int    `json:"size,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Annotation is a free-floating text label
type Annotation struct {
	Text      string   `json:"text"`
	XRef      string   `json:"xref,omitempty"`
	YRef      string   `json:"yref,omitempty"`
	X         *float64 `json:"x,omitempty"`
	Y         *float64 `json:"y,omitempty"`
	ShowArrow bool     `json:"showarrow"`
	Font      *Font    `json:"font,omitempty"`
}

func ptr[T any](v T) *T { return &v }

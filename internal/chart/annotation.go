package chart

// Annotation returns a figure without traces that only shows text. It is
// used for empty filter results.
func (r *Renderer) Annotation(text string, size int) Figure {
	return Figure{
		Data: []Trace{},
		Layout: Layout{
			Annotations: []Annotation{{
				Text:      text,
				ShowArrow: false,
				Font:      r.theme.font(size),
			}},
		},
	}
}

// centeredAnnotation pins the text to the middle of the plotting area
func (r *Renderer) centeredAnnotation(text string, size int) Figure {
	fig := r.Annotation(text, size)
	a := &fig.Layout.Annotations[0]
	a.XRef, a.YRef = "paper", "paper"
	a.X, a.Y = ptr(0.5), ptr(0.5)
	return fig
}

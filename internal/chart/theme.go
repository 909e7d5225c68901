package chart

import (
	"math"
	"strconv"
)

// Theme holds the colors and fonts shared by every figure
type Theme struct {
	FontFamily     string
	PrimaryColor   string
	SecondaryColor string
	HoverBGColor   string
	HoverFontColor string
	TitleSize      int
	HoverSize      int
}

// DefaultTheme is the dashboard palette
func DefaultTheme() Theme {
	return Theme{
		FontFamily:     "Noto Sans Arabic",
		PrimaryColor:   "#2C7D8B",
		SecondaryColor: "#2A927A",
		HoverBGColor:   "#C9D2BA",
		HoverFontColor: "#202020",
		TitleSize:      16,
		HoverSize:      12,
	}
}

// Labels are the user-facing strings of the bar and heatmap figures
type Labels struct {
	StoreCount   string
	ReviewCount  string
	Rating       string
	Legend       string
	HeatmapTitle string
	HeatmapXAxis string
	HeatmapYAxis string
	ReviewsRange string
	StoreUnit    string
	ReviewUnit   string
	CountAxis    string
	RatingAxis   string
	ReviewsAxis  string
}

// ArabicLabels returns the dashboard's Arabic wording
func ArabicLabels() Labels {
	return Labels{
		StoreCount:   "عدد المتاجر",
		ReviewCount:  "عدد التقييمات",
		Rating:       "التقييم",
		Legend:       "المؤشرات",
		HeatmapTitle: "كثافة التقييمات مقابل المراجعات",
		HeatmapXAxis: "عدد التقييمات",
		HeatmapYAxis: "التقييم",
		ReviewsRange: "نطاق المراجعات",
		StoreUnit:    "متجر",
		ReviewUnit:   "تقييم",
		CountAxis:    "العدد",
		RatingAxis:   "التقييم / العدد",
		ReviewsAxis:  "العدد / التقييم",
	}
}

func (t Theme) font(size int) *Font {
	return &Font{Family: t.FontFamily, Size: size}
}

func (t Theme) hoverLabel(align string) *HoverLabel {
	return &HoverLabel{
		BGColor: t.HoverBGColor,
		Align:   align,
		Font:    &Font{Family: t.FontFamily, Size: t.HoverSize, Color: t.HoverFontColor},
	}
}

// FormatNumber prints a float the way the dashboard shows parameters:
// integral values keep one decimal ("4.0"), others print in full ("4.25").
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// roundText renders v rounded to two decimals without trailing zeros
func roundText(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

package render

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	apperrors "github.com/circmark/circmark/pkg/errors"
)

// Theme controls the visual appearance of SVG output. Zero values are
// replaced by the defaults, so a theme file only needs the keys it changes:
//
//	stroke = "#1a237e"
//	stroke_width = 3.0
//	background = "white"
type Theme struct {
	Stroke      string  `toml:"stroke"`       // wire and symbol stroke color
	Background  string  `toml:"background"`   // empty means transparent
	StrokeWidth float64 `toml:"stroke_width"` // stroke width in user units
	FontFamily  string  `toml:"font_family"`  // label font
	FontSize    float64 `toml:"font_size"`    // label size in user units
	Margin      float64 `toml:"margin"`       // whitespace around the diagram
	ShowLabels  bool    `toml:"show_labels"`  // draw element labels
}

// DefaultTheme returns the built-in appearance.
func DefaultTheme() Theme {
	return Theme{
		Stroke:      "black",
		StrokeWidth: 2,
		FontFamily:  "sans-serif",
		FontSize:    16,
		Margin:      30,
		ShowLabels:  true,
	}
}

// LoadTheme reads a TOML theme file, applying defaults for absent keys.
func LoadTheme(path string) (Theme, error) {
	t := DefaultTheme()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Theme{}, apperrors.New(apperrors.ErrCodeFileNotFound, "theme file not found: %s", path)
	}
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return Theme{}, apperrors.Wrap(apperrors.ErrCodeInvalidTheme, err, "parse theme %s", path)
	}
	if err := t.Validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// Validate checks that the theme values are renderable.
func (t Theme) Validate() error {
	if t.StrokeWidth <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidTheme, "stroke_width must be positive, got %g", t.StrokeWidth)
	}
	if t.FontSize <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidTheme, "font_size must be positive, got %g", t.FontSize)
	}
	if t.Margin < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidTheme, "margin must not be negative, got %g", t.Margin)
	}
	return nil
}

// Fingerprint returns a string that changes whenever any field changes.
// The pipeline folds it into artifact cache keys.
func (t Theme) Fingerprint() string {
	return fmt.Sprintf("%s|%s|%g|%s|%g|%g|%t",
		t.Stroke, t.Background, t.StrokeWidth, t.FontFamily, t.FontSize, t.Margin, t.ShowLabels)
}

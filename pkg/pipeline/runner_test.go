package pipeline

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/circmark/circmark/pkg/cache"
	apperrors "github.com/circmark/circmark/pkg/errors"
	"github.com/circmark/circmark/pkg/render"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Source:  "(R1+R2||R3)",
		Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.ElementCount != 3 {
		t.Errorf("element count: got %d, want 3", result.Stats.ElementCount)
	}
	if result.SourceHash == "" {
		t.Error("missing source hash")
	}
	if len(result.Schematic.Symbols) != 3 {
		t.Errorf("symbols: got %d, want 3", len(result.Schematic.Symbols))
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok || !bytes.Contains(svg, []byte("<svg")) {
		t.Error("missing or malformed svg artifact")
	}
	jsonArt, ok := result.Artifacts[FormatJSON]
	if !ok || !bytes.Contains(jsonArt, []byte(`"symbols"`)) {
		t.Error("missing or malformed json artifact")
	}

	// NullCache never hits.
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("null cache reported hits: %+v", result.CacheInfo)
	}
}

func TestRunnerExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, testLogger())
	defer r.Close()

	opts := Options{
		Source:  "|V1-R1|O",
		Formats: []string{FormatSVG, FormatJSON},
	}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("cold cache reported hits: %+v", first.CacheInfo)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the schematic cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from the fresh one")
	}

	// Refresh bypasses the cache entirely.
	refreshOpts := opts
	refreshOpts.Refresh = true
	third, err := r.Execute(context.Background(), refreshOpts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh run reported hits: %+v", third.CacheInfo)
	}
}

func TestRunnerExecuteThemeSplitsArtifactCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, testLogger())
	defer r.Close()

	base := Options{Source: "R1", Formats: []string{FormatSVG}}
	if _, err := r.Execute(context.Background(), base); err != nil {
		t.Fatal(err)
	}

	// Same source with a different theme must not reuse the cached artifact.
	theme := render.DefaultTheme()
	theme.Stroke = "#1a237e"
	themed := Options{Source: "R1", Formats: []string{FormatSVG}, Theme: &theme}
	result, err := r.Execute(context.Background(), themed)
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.RenderHit {
		t.Error("themed run should miss the artifact cache")
	}
	if !bytes.Contains(result.Artifacts[FormatSVG], []byte("#1a237e")) {
		t.Error("themed artifact does not reflect the theme")
	}
	// The schematic itself is theme-independent and may hit.
	if !result.CacheInfo.LayoutHit {
		t.Error("themed run should still hit the schematic cache")
	}
}

func TestRunnerExecuteParseError(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	defer r.Close()

	_, err := r.Execute(context.Background(), Options{Source: "(R1+"})
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidSyntax) {
		t.Errorf("code: got %q, want INVALID_SYNTAX", apperrors.GetCode(err))
	}
}

func TestRunnerExecuteLexError(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	defer r.Close()

	_, err := r.Execute(context.Background(), Options{Source: "R1*R2"})
	if err == nil {
		t.Fatal("expected lex error")
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidCharacter) {
		t.Errorf("code: got %q, want INVALID_CHARACTER", apperrors.GetCode(err))
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Error("nil arguments should be replaced with defaults")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

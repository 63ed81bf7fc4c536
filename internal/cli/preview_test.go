package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/roomscene/pkg/config"
	"github.com/matzehuels/roomscene/pkg/pipeline"
	"github.com/matzehuels/roomscene/pkg/room"
)

func previewOptions() pipeline.Options {
	return pipeline.OptionsFromConfig(config.Default())
}

func update(t *testing.T, m PreviewModel, msg tea.Msg) (PreviewModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(PreviewModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return pm, cmd
}

func TestPreviewModelInitial(t *testing.T) {
	m := NewPreviewModel(previewOptions())
	if m.Err != nil {
		t.Fatalf("Err = %v", m.Err)
	}
	if m.Layout.Len() != room.DefaultObjectCount {
		t.Errorf("objects = %d", m.Layout.Len())
	}
	if m.Raster.Cols != 60 || m.Raster.Rows != 30 {
		t.Errorf("raster = %dx%d, want 60x30", m.Raster.Cols, m.Raster.Rows)
	}
	if !strings.Contains(m.View(), "seed 1") {
		t.Error("view missing seed")
	}
}

func TestPreviewModelKeys(t *testing.T) {
	m := NewPreviewModel(previewOptions())
	first := m.Fingerprint

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Opts.Seed != 2 || m.Fingerprint == first {
		t.Errorf("after right: seed %d, fingerprint %s", m.Opts.Seed, m.Fingerprint)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Opts.Seed != 1 || m.Fingerprint != first {
		t.Errorf("after left: seed %d, fingerprint %s", m.Opts.Seed, m.Fingerprint)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if !m.Opts.IsStatic() || m.Layout.Len() != len(room.DefaultFurniture()) {
		t.Errorf("after s: variant %s, %d objects", m.Opts.Variant, m.Layout.Len())
	}
	if !strings.Contains(m.View(), "static layout") {
		t.Error("view missing static title")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if m.Opts.IsStatic() {
		t.Error("s did not switch back to random")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Chosen || cmd == nil {
		t.Error("enter did not choose and quit")
	}
}

func TestPreviewModelQuit(t *testing.T) {
	m := NewPreviewModel(previewOptions())
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if m.Chosen || cmd == nil {
		t.Error("q should quit without choosing")
	}
}

func TestPreviewModelResize(t *testing.T) {
	m := NewPreviewModel(previewOptions())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 44, Height: 30})
	if m.Raster.Cols > 40 || m.Raster.Rows > 20 {
		t.Errorf("raster %dx%d exceeds window", m.Raster.Cols, m.Raster.Rows)
	}
}

func TestPreviewModelError(t *testing.T) {
	opts := previewOptions()
	opts.ObjectCount = 0
	m := NewPreviewModel(opts)
	if m.Err == nil {
		t.Fatal("expected error for zero count")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Chosen {
		t.Error("chose a layout that failed")
	}
	if !strings.Contains(m.View(), "object count") {
		t.Errorf("view = %q", m.View())
	}
}

func TestFitTextSize(t *testing.T) {
	env := room.DefaultEnvironment()
	tests := []struct {
		name          string
		width, height int
		cols, rows    int
	}{
		{"natural", 0, 0, 100, 50},
		{"roomy", 200, 100, 100, 50},
		{"narrow", 50, 0, 50, 25},
		{"short", 0, 10, 20, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows := fitTextSize(env, tt.width, tt.height)
			if cols != tt.cols || rows != tt.rows {
				t.Errorf("fitTextSize = %dx%d, want %dx%d", cols, rows, tt.cols, tt.rows)
			}
		})
	}
}

package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sontheimer/TVB-NEST-v1/internal/config"
	"github.com/sontheimer/TVB-NEST-v1/internal/experiment"
)

func testResult() *experiment.Result {
	return &experiment.Result{
		Times:   []float64{0.1, 0.2, 0.3},
		States:  [][]float64{{0.2, 0.5}, {0.3, 0.6}, {0.4, 0.7}},
		Metrics: map[string]float64{"mean_field": 0.45},
	}
}

func TestTraceToSVG(t *testing.T) {
	svg := TraceToSVG([]float64{0, 1, 2}, []float64{0.1, 0.5, 0.2}, 400, 200, "#00ff00")
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML declaration")
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("missing stroke color")
	}
	if !strings.Contains(svg, "<path") {
		t.Error("missing path element")
	}

	if TraceToSVG([]float64{0}, []float64{1}, 400, 200, "#fff") != "" {
		t.Error("expected empty output for single point")
	}
	if TraceToSVG([]float64{0, 1}, []float64{1}, 400, 200, "#fff") != "" {
		t.Error("expected empty output for mismatched lengths")
	}
}

func TestResultToSVGOnePathPerRegion(t *testing.T) {
	svg := ResultToSVG(testResult(), 400, 200)
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("expected 2 paths, got %d", got)
	}
}

func TestTraceToSVGFlatLine(t *testing.T) {
	svg := TraceToSVG([]float64{0, 1, 2}, []float64{0.5, 0.5, 0.5}, 400, 200, "#fff")
	if !strings.Contains(svg, "<path") {
		t.Error("flat trace should still render")
	}
}

func TestWriteJSONRoundtrip(t *testing.T) {
	cfg := config.DefaultConfig()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, cfg, testResult()); err != nil {
		t.Fatal(err)
	}

	var dump RunDump
	if err := json.Unmarshal(buf.Bytes(), &dump); err != nil {
		t.Fatal(err)
	}
	if dump.Model != "reduced_wong_wang" {
		t.Errorf("expected model reduced_wong_wang, got %s", dump.Model)
	}
	if dump.Samples != 3 {
		t.Errorf("expected 3 samples, got %d", dump.Samples)
	}
	if dump.States[2][1] != 0.7 {
		t.Errorf("expected 0.7, got %f", dump.States[2][1])
	}
}

func TestExportJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, config.DefaultConfig(), testResult()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
}

package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/sontheimer/TVB-NEST-v1/internal/config"
	"github.com/sontheimer/TVB-NEST-v1/internal/experiment"
)

type RunDump struct {
	Model       string             `json:"model"`
	Integrator  string             `json:"integrator"`
	Coupling    string             `json:"coupling"`
	Dt          float64            `json:"dt"`
	Synchronize float64            `json:"synchronize"`
	Duration    float64            `json:"duration"`
	ProxyIDs    []int              `json:"proxy_ids"`
	Samples     int                `json:"samples"`
	Times       []float64          `json:"times"`
	States      [][]float64        `json:"states"`
	Metrics     map[string]float64 `json:"metrics"`
}

func WriteJSON(w io.Writer, cfg *config.Config, result *experiment.Result) error {
	dump := RunDump{
		Model:       cfg.Model.Name,
		Integrator:  cfg.Integrator,
		Coupling:    cfg.Coupling.Name,
		Dt:          cfg.Dt,
		Synchronize: cfg.Synchronize,
		Duration:    cfg.Duration,
		ProxyIDs:    cfg.Network.ProxyIDs,
		Samples:     len(result.Times),
		Times:       result.Times,
		States:      result.States,
		Metrics:     result.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dump)
}

func ExportJSON(path string, cfg *config.Config, result *experiment.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, cfg, result)
}

package config

var Presets = map[string]*Config{
	// small ring with one proxy region, the quick-look default
	"ring8": {
		Network:     NetworkConfig{Regions: 8, Topology: "ring", Weight: 1.0, TractLength: 1.5, ProxyIDs: []int{0}},
		Model:       ModelConfig{Name: "reduced_wong_wang"},
		Coupling:    CouplingConfig{Name: "linear", A: DefaultCouplingA},
		Integrator:  "heun",
		RateSource:  RateConfig{Name: "sinusoid", Level: 0.3, Amplitude: 0.2, Frequency: 10.0},
		Dt:          0.1,
		Synchronize: 2.0,
		Duration:    200.0,
		Seed:        DefaultSeed,
	},
	// densely connected stand-in with two externally driven regions
	"dense16": {
		Network:     NetworkConfig{Regions: 16, Topology: "all_to_all", Weight: 0.5, TractLength: 3.0, ProxyIDs: []int{0, 1}},
		Model:       ModelConfig{Name: "reduced_wong_wang"},
		Coupling:    CouplingConfig{Name: "linear", A: DefaultCouplingA},
		Integrator:  "heun",
		RateSource:  RateConfig{Name: "poisson", Level: 0.3, Amplitude: 0.1},
		Dt:          0.1,
		Synchronize: 2.0,
		Duration:    500.0,
		Seed:        DefaultSeed,
	},
	// no proxies: the network runs closed, useful for sweeps
	"closed8": {
		Network:     NetworkConfig{Regions: 8, Topology: "ring", Weight: 1.0, TractLength: 1.5},
		Model:       ModelConfig{Name: "reduced_wong_wang"},
		Coupling:    CouplingConfig{Name: "linear", A: DefaultCouplingA},
		Integrator:  "heun",
		RateSource:  RateConfig{Name: "constant", Level: 0.0},
		Dt:          0.1,
		Synchronize: 2.0,
		Duration:    500.0,
		Seed:        DefaultSeed,
	},
	// oscillator network, no proxies, for spectrum analysis
	"oscillator8": {
		Network:     NetworkConfig{Regions: 8, Topology: "ring", Weight: 1.0, TractLength: 1.5},
		Model:       ModelConfig{Name: "generic_2d"},
		Coupling:    CouplingConfig{Name: "linear", A: 0.1},
		Integrator:  "heun",
		RateSource:  RateConfig{Name: "constant", Level: 0.0},
		Dt:          0.05,
		Synchronize: 2.0,
		Duration:    1000.0,
		Seed:        DefaultSeed,
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}

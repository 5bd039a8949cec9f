package config

var Presets = map[string]map[string]*Config{
	"regulation": {
		"unit": {
			Game: "regulation", Horizon: 50, Dt: 0.1,
			InitState: []float64{1, 0},
		},
		"fast": {
			Game: "regulation", Horizon: 20, Dt: 0.1,
			InitState: []float64{1, 2},
		},
	},
	"pursuit": {
		"close": {
			Game: "pursuit", Horizon: 60, Dt: 0.1,
			InitState: []float64{0, 0, 0, 0, 2, 2, 0, 0},
		},
		"far": {
			Game: "pursuit", Horizon: 100, Dt: 0.1,
			InitState: []float64{0, 0, 0, 0, 6, -4, 0, 0},
		},
		"crossing": {
			Game: "pursuit", Horizon: 80, Dt: 0.1,
			InitState: []float64{-3, 0, 1, 0, 3, 0, -1, 0},
		},
	},
	"merge": {
		"tight": {
			Game: "merge", Horizon: 60, Dt: 0.1,
			InitState: []float64{0, 1, -1, 1},
		},
		"loose": {
			Game: "merge", Horizon: 80, Dt: 0.1,
			InitState: []float64{0, 1, -5, 2},
		},
	},
}

func GetPreset(game, preset string) *Config {
	gamePresets, ok := Presets[game]
	if !ok {
		return nil
	}
	cfg, ok := gamePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(game string) []string {
	gamePresets, ok := Presets[game]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(gamePresets))
	for name := range gamePresets {
		names = append(names, name)
	}
	return names
}

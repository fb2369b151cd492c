package config

import "sort"

// Presets holds named parameter sets per field. Each preset only lists
// what differs from DefaultConfig.
var Presets = map[string]map[string]*Config{
	"lorenz": {
		"classic": {
			Field: "lorenz", Params: map[string]float64{"sigma": 10, "rho": 28, "beta": 8.0 / 3.0},
		},
		"transient": {
			Field: "lorenz", Params: map[string]float64{"rho": 14},
		},
		"periodic": {
			Field: "lorenz", Params: map[string]float64{"rho": 99.96}, Dt: 0.005,
		},
		"cloud": {
			Field: "lorenz", Mode: ModeScatter, StepsPerTick: 1000, Capacity: 1000,
		},
	},
	"rossler": {
		"classic": {
			Field: "rossler", Params: map[string]float64{"a": 0.2, "b": 0.2, "c": 5.7},
		},
		"period2": {
			Field: "rossler", Params: map[string]float64{"c": 4},
		},
		"funnel": {
			Field: "rossler", Params: map[string]float64{"a": 0.3, "c": 10}, Dt: 0.005,
		},
	},
	"thomas": {
		"chaotic": {
			Field: "thomas", Params: map[string]float64{"b": 0.208186},
		},
		"labyrinth": {
			Field: "thomas", Params: map[string]float64{"b": 0.05}, StepsPerTick: 50,
		},
	},
	"aizawa": {
		"cloud": {
			Field: "aizawa", Mode: ModeScatter, StepsPerTick: 1000, Capacity: 1000,
		},
	},
	"halvorsen": {
		"tight": {
			Field: "halvorsen", Params: map[string]float64{"a": 1.89},
		},
	},
}

// GetPreset returns the named preset merged over DefaultConfig, or nil.
func GetPreset(field, preset string) *Config {
	fieldPresets, ok := Presets[field]
	if !ok {
		return nil
	}
	p, ok := fieldPresets[preset]
	if !ok {
		return nil
	}
	return Merge(DefaultConfig(), p)
}

// Merge copies the non-zero settings of over onto a copy of base.
func Merge(base, over *Config) *Config {
	out := *base
	if over.Field != "" {
		out.Field = over.Field
	}
	if over.Mode != "" {
		out.Mode = over.Mode
	}
	if over.Dt != 0 {
		out.Dt = over.Dt
	}
	if over.StepsPerTick != 0 {
		out.StepsPerTick = over.StepsPerTick
	}
	if over.Capacity != 0 {
		out.Capacity = over.Capacity
	}
	if over.Samples != 0 {
		out.Samples = over.Samples
	}
	if len(over.Params) > 0 {
		out.Params = make(map[string]float64, len(over.Params))
		for k, v := range over.Params {
			out.Params[k] = v
		}
	}
	if len(over.Initial) > 0 {
		out.Initial = append([]float64(nil), over.Initial...)
	}
	return &out
}

func ListPresets(field string) []string {
	fieldPresets, ok := Presets[field]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(fieldPresets))
	for name := range fieldPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package config

var Presets = map[string]map[string]*Config{
	"quadratic": {
		"quick": {
			Integrand: "quadratic", Method: "montecarlo", Dim: 1,
			NMin: 2, NMax: 64, Trials: 16, Budget: 1024,
			Domain: DomainConfig{Lower: 0, Upper: 1},
		},
		"fine": {
			Integrand: "quadratic", Method: "montecarlo", Dim: 1,
			NMin: 2, NMax: 512, Trials: 64, Budget: 16384,
			Domain: DomainConfig{Lower: 0, Upper: 1},
		},
		"curse": {
			Integrand: "quadratic", Method: "riemann", Dim: 6,
			NMin: 2, NMax: 6, Trials: 32, Budget: 4096,
			Domain: DomainConfig{Lower: 0, Upper: 1},
		},
	},
	"coscube": {
		"quick": {
			Integrand: "coscube", Method: "montecarlo", Dim: 2,
			NMin: 2, NMax: 32, Trials: 16, Budget: 1024,
			Domain: DomainConfig{Lower: 0, Upper: 1},
		},
		"wide": {
			Integrand: "coscube", Method: "riemann", Dim: 2,
			NMin: 2, NMax: 48, Trials: 16, Budget: 4096,
			Domain: DomainConfig{Lower: -1, Upper: 1},
		},
	},
	"gaussian": {
		"quick": {
			Integrand: "gaussian", Method: "montecarlo", Dim: 3,
			NMin: 2, NMax: 16, Trials: 16, Budget: 4096,
			Domain: DomainConfig{Lower: 0, Upper: 1},
		},
	},
}

func GetPreset(integrand, name string) *Config {
	byName, ok := Presets[integrand]
	if !ok {
		return nil
	}
	return byName[name]
}

func ListPresets(integrand string) []string {
	byName, ok := Presets[integrand]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	return names
}

package domain

// Configuration is the content of a simulation input file. Overrides holds the
// assumptions block as written; Assumptions is the effective set after defaults.
type Configuration struct {
	Simulation  SimulationParams    `yaml:"simulation" json:"simulation"`
	PostalCode  string              `yaml:"postal_code,omitempty" json:"postal_code,omitempty"`
	Overrides   AssumptionOverrides `yaml:"assumptions,omitempty" json:"-"`
	Assumptions Assumptions         `yaml:"-" json:"assumptions"`
}

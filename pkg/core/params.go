package core

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeBool denotes boolean parameters.
	ParamTypeBool ParamType = "bool"
	// ParamTypeString denotes free-form or enumerated string parameters.
	ParamTypeString ParamType = "string"
)

// Parameter describes a single tunable value of a world configuration.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the current set of tunables of a configuration.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Find returns the parameter registered under key.
func (s ParameterSnapshot) Find(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// Keys lists every parameter key in group order.
func (s ParameterSnapshot) Keys() []string {
	var keys []string
	for _, g := range s.Groups {
		for _, p := range g.Params {
			keys = append(keys, p.Key)
		}
	}
	return keys
}

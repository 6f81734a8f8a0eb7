package core

// Parameter describes a single run setting for presentation.
type Parameter struct {
	Key   string
	Label string
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the settings a run was started with.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lines flattens the snapshot into "group: label=value" lines.
func (s ParameterSnapshot) Lines() []string {
	var lines []string
	for _, g := range s.Groups {
		for _, p := range g.Params {
			lines = append(lines, g.Name+": "+p.Label+"="+p.Value)
		}
	}
	return lines
}

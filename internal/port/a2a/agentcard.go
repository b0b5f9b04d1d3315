package a2a

// AgentCard describes the agent's capabilities per the A2A protocol.
type AgentCard struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	URL          string  `json:"url"`
	Version      string  `json:"version"`
	Skills       []Skill `json:"skills"`
	Capabilities struct {
		Streaming bool `json:"streaming"`
	} `json:"capabilities"`
}

// Skill describes a single capability of the agent.
type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	InputModes  []string `json:"inputModes"`
	OutputModes []string `json:"outputModes"`
}

// CardConfig holds the configurable fields of the agent card.
type CardConfig struct {
	Name        string
	Description string
	URL         string
	Version     string
}

// BuildAgentCard returns the agent card for this service.
func BuildAgentCard(cfg CardConfig) AgentCard {
	card := AgentCard{
		Name:        cfg.Name,
		Description: cfg.Description,
		URL:         cfg.URL,
		Version:     cfg.Version,
		Skills: []Skill{
			{
				ID:          "process-purchase-order",
				Name:        "Process Purchase Order",
				Description: "Validate a purchase order and report errors, warnings, and a summary",
				InputModes:  []string{"text", "data"},
				OutputModes: []string{"text", "data"},
			},
		},
	}
	card.Capabilities.Streaming = false
	return card
}

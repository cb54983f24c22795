package domain

// GenerationParams is the caller input for instantiating a template.
type GenerationParams struct {
	TeamID    int64             `json:"team_id"`
	Variables map[string]string `json:"variables"`
	StartDate string            `json:"start_date"`
}

// GenerationResult reports the outcome of a successful generation.
type GenerationResult struct {
	Success      bool
	Message      string
	ProjectUUIDs []string
	ProjectCount int
	TaskCount    int
}

// RowError describes why a single imported row was rejected. Row is 1-based
// and counts the header line.
type RowError struct {
	Row    int
	Reason string
}

// ImportResult summarizes a batch import where each row commits on its own.
type ImportResult struct {
	Successful int
	Failed     int
	Errors     []RowError
}

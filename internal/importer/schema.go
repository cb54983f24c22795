package importer

// ProjectRow is one line of a projects CSV:
// name,description,team_uuid,start_date,end_date,status
type ProjectRow struct {
	Name        string `json:"name" validate:"notblank"`
	Description string `json:"description"`
	TeamUUID    string `json:"team_uuid" validate:"notblank"`
	StartDate   string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status" validate:"omitempty,oneof=planning active on_hold completed cancelled"`
}

// TaskRow is one line of a tasks CSV:
// title,description,project_uuid,assignee_email,status,priority,due_date
type TaskRow struct {
	Title         string `json:"title" validate:"notblank"`
	Description   string `json:"description"`
	ProjectUUID   string `json:"project_uuid" validate:"notblank"`
	AssigneeEmail string `json:"assignee_email" validate:"omitempty,email"`
	Status        string `json:"status" validate:"omitempty,oneof=todo in_progress review done"`
	Priority      string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate       string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// MemberRow is one line of a team members CSV: team_uuid,email,role
type MemberRow struct {
	TeamUUID string `json:"team_uuid" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"omitempty,oneof=member lead"`
}

var (
	projectColumns = []string{"name", "description", "team_uuid", "start_date", "end_date", "status"}
	taskColumns    = []string{"title", "description", "project_uuid", "assignee_email", "status", "priority", "due_date"}
	memberColumns  = []string{"team_uuid", "email", "role"}

	projectRequired = []string{"name", "team_uuid"}
	taskRequired    = []string{"title", "project_uuid"}
	memberRequired  = []string{"team_uuid", "email"}
)

// ProjectColumns returns the full header of a projects CSV.
func ProjectColumns() []string { return append([]string(nil), projectColumns...) }

// TaskColumns returns the full header of a tasks CSV.
func TaskColumns() []string { return append([]string(nil), taskColumns...) }

// MemberColumns returns the full header of a team members CSV.
func MemberColumns() []string { return append([]string(nil), memberColumns...) }

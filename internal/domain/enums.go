package domain

// DateLayout is the calendar-date format used for every stored and displayed date.
const DateLayout = "2006-01-02"

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[string]bool{
	"planning": true, "active": true, "on_hold": true,
	"completed": true, "cancelled": true,
}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[string]bool{
	"todo": true, "in_progress": true, "review": true, "done": true,
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// ValidTaskPriorities is the canonical set of accepted task priority strings.
var ValidTaskPriorities = map[string]bool{
	"low": true, "medium": true, "high": true, "urgent": true,
}

type MemberRole string

const (
	RoleMember MemberRole = "member"
	RoleLead   MemberRole = "lead"
)

// ValidMemberRoles is the canonical set of accepted team member roles.
var ValidMemberRoles = map[string]bool{
	"member": true, "lead": true,
}

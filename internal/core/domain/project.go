package domain

import "time"

// Project links one client to the designer who created it.
type Project struct {
	ID               int64     `json:"id"`
	ClientID         int64     `json:"client_id"`
	DesignerID       int64     `json:"designer_id"`
	SiteType         string    `json:"site_type"`
	ContactDetails   string    `json:"contact_details"`
	PreferredContact string    `json:"preferred_contact"`
	CreatedAt        time.Time `json:"created_at"`

	// Filled by joined lookups only.
	ClientName    string `json:"client_name,omitempty"`
	ClientEmail   string `json:"client_email,omitempty"`
	DesignerName  string `json:"designer_name,omitempty"`
	DesignerEmail string `json:"designer_email,omitempty"`
}

// VisibleTo reports whether the session may read this project.
func (p *Project) VisibleTo(s *Session) bool {
	if p == nil || !s.IsLoggedIn() {
		return false
	}
	switch s.Role {
	case RoleDesigner:
		return p.DesignerID == s.UserID
	case RoleClient:
		return p.ClientID == s.UserID
	}
	return false
}

// Task is one step in a project's timeline.
type Task struct {
	ID              int64     `json:"id"`
	ProjectID       int64     `json:"project_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ProgressPercent int       `json:"progress_percent"`
	Comments        string    `json:"comments"`
	CreatedAt       time.Time `json:"created_at"`
}

// BudgetItem holds costs in minor currency units.
type BudgetItem struct {
	ID            int64     `json:"id"`
	ProjectID     int64     `json:"project_id"`
	ItemName      string    `json:"item_name"`
	EstimatedCost int64     `json:"estimated_cost"`
	ActualCost    int64     `json:"actual_cost"`
	CreatedAt     time.Time `json:"created_at"`
}

// BudgetSummary aggregates a project's budget items. Difference is
// actual minus estimated, so a positive value means over budget.
type BudgetSummary struct {
	TotalEstimated int64 `json:"total_estimated"`
	TotalActual    int64 `json:"total_actual"`
	Difference     int64 `json:"difference"`
	OverBudget     bool  `json:"over_budget"`
}

func SummarizeBudget(items []BudgetItem) BudgetSummary {
	var sum BudgetSummary
	for _, it := range items {
		sum.TotalEstimated += it.EstimatedCost
		sum.TotalActual += it.ActualCost
	}
	sum.Difference = sum.TotalActual - sum.TotalEstimated
	sum.OverBudget = sum.Difference > 0
	return sum
}

// TaskCompletion is the mean progress of tasks, 0 when there are none.
func TaskCompletion(tasks []Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	total := 0
	for _, t := range tasks {
		total += t.ProgressPercent
	}
	return float64(total) / float64(len(tasks))
}

// DefaultTasks seeds the timeline of every new project.
var DefaultTasks = []string{
	"Site Survey & Measurements",
	"Conceptual Design",
	"3D Modeling & Visualization",
	"Material Selection",
	"Electrical Layout Planning",
	"Plumbing Layout Planning",
	"Furniture Procurement",
	"Painting & Wall Finishing",
	"Flooring Installation",
	"Lighting Installation",
	"Furniture Installation",
	"Final Styling & Accessories",
	"Quality Check & Handover",
}

// DefaultBudgetCategories seeds the budget of every new project.
var DefaultBudgetCategories = []string{
	"Design Fees",
	"Furniture",
	"Lighting Fixtures",
	"Wall Paint & Finishes",
	"Flooring Materials",
	"Kitchen & Bathroom Fittings",
	"Curtains & Blinds",
	"Electrical Work",
	"Plumbing Work",
	"Carpentry",
	"Decorative Accessories",
	"Contingency Fund",
}

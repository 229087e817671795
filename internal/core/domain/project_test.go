package domain

import "testing"

func TestSummarizeBudget(t *testing.T) {
	items := []BudgetItem{
		{EstimatedCost: 100_00, ActualCost: 120_00},
		{EstimatedCost: 50_00, ActualCost: 10_00},
	}
	got := SummarizeBudget(items)
	want := BudgetSummary{TotalEstimated: 150_00, TotalActual: 130_00, Difference: -20_00, OverBudget: false}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	over := SummarizeBudget([]BudgetItem{{EstimatedCost: 1, ActualCost: 2}})
	if !over.OverBudget || over.Difference != 1 {
		t.Fatalf("expected over budget, got %+v", over)
	}

	if empty := SummarizeBudget(nil); empty != (BudgetSummary{}) {
		t.Fatalf("expected zero summary, got %+v", empty)
	}
}

func TestTaskCompletion(t *testing.T) {
	if got := TaskCompletion(nil); got != 0 {
		t.Fatalf("expected 0 for no tasks, got %v", got)
	}
	tasks := []Task{{ProgressPercent: 100}, {ProgressPercent: 50}, {ProgressPercent: 0}, {ProgressPercent: 50}}
	if got := TaskCompletion(tasks); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
}

func TestProject_VisibleTo(t *testing.T) {
	p := &Project{ID: 1, DesignerID: 10, ClientID: 20}
	cases := []struct {
		name string
		s    *Session
		want bool
	}{
		{"owner designer", &Session{LoggedIn: true, UserID: 10, Role: RoleDesigner}, true},
		{"other designer", &Session{LoggedIn: true, UserID: 11, Role: RoleDesigner}, false},
		{"owning client", &Session{LoggedIn: true, UserID: 20, Role: RoleClient}, true},
		{"client with designer id", &Session{LoggedIn: true, UserID: 10, Role: RoleClient}, false},
		{"anonymous", nil, false},
	}
	for _, tc := range cases {
		if got := p.VisibleTo(tc.s); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestDefaults(t *testing.T) {
	if len(DefaultTasks) != 13 {
		t.Fatalf("expected 13 default tasks, got %d", len(DefaultTasks))
	}
	if len(DefaultBudgetCategories) != 12 {
		t.Fatalf("expected 12 default budget categories, got %d", len(DefaultBudgetCategories))
	}
}

func TestPasswordPolicyError(t *testing.T) {
	err := &PasswordPolicyError{Failed: []string{"at least 8 characters", "a digit"}}
	if err.Error() != "password needs at least 8 characters, a digit" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if err.Unwrap() != ErrWeakPassword {
		t.Fatalf("expected unwrap to ErrWeakPassword")
	}
}

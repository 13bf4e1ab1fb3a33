package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/spec-kit/hr-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestEmployeeLifecycle(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)
	rec := &recorder{}
	deps := RecordDependencies{Events: newDispatcher(rec)}
	employees := NewEmployeeService(deps)
	departments := NewDepartmentService(deps)

	if err := sess.Users().Create(ctx, &domain.User{Username: "alice", PasswordHash: "x", Role: domain.RoleEmployee}); err != nil {
		t.Fatal(err)
	}
	dept, err := departments.Create(ctx, sess.Departments(), admin, "Engineering")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := employees.Create(ctx, sess.Employees(), employee, EmployeeInput{Name: "X", Email: "x@example.com"}); statusOf(err) != http.StatusForbidden {
		t.Fatalf("employee create status = %d, want 403", statusOf(err))
	}

	alice, err := employees.Create(ctx, sess.Employees(), admin, EmployeeInput{
		Name: "Alice", Email: "alice@example.com", DepartmentID: &dept.ID, Username: strPtr("alice"),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	bob, err := employees.Create(ctx, sess.Employees(), admin, EmployeeInput{Name: "Bob", Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name       string
		call       func() error
		wantStatus int
	}{
		{"employee reads own", func() error {
			_, err := employees.Get(ctx, sess.Employees(), employee, alice.ID)
			return err
		}, http.StatusOK},
		{"employee reads other", func() error {
			_, err := employees.Get(ctx, sess.Employees(), employee, bob.ID)
			return err
		}, http.StatusForbidden},
		{"missing record reported before ownership", func() error {
			_, err := employees.Get(ctx, sess.Employees(), employee, 9999)
			return err
		}, http.StatusNotFound},
		{"employee lists", func() error {
			_, err := employees.List(ctx, sess.Employees(), employee, nil, Page{Limit: 10})
			return err
		}, http.StatusForbidden},
		{"duplicate email", func() error {
			_, err := employees.Create(ctx, sess.Employees(), admin, EmployeeInput{Name: "B2", Email: "BOB@example.com"})
			return err
		}, http.StatusConflict},
		{"unknown department", func() error {
			missing := int64(4242)
			_, err := employees.Create(ctx, sess.Employees(), admin, EmployeeInput{Name: "C", Email: "c@example.com", DepartmentID: &missing})
			return err
		}, http.StatusBadRequest},
		{"blank name", func() error {
			_, err := employees.Create(ctx, sess.Employees(), admin, EmployeeInput{Name: " ", Email: "d@example.com"})
			return err
		}, http.StatusBadRequest},
		{"update missing", func() error {
			_, err := employees.Update(ctx, sess.Employees(), admin, 9999, EmployeeInput{Name: "Z", Email: "z@example.com"})
			return err
		}, http.StatusNotFound},
		{"employee updates own", func() error {
			_, err := employees.Update(ctx, sess.Employees(), employee, alice.ID, EmployeeInput{Name: "A", Email: "alice@example.com"})
			return err
		}, http.StatusForbidden},
		{"department with employees", func() error {
			_, err := departments.Delete(ctx, sess.Departments(), admin, dept.ID)
			return err
		}, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if got := statusOf(err); got != tt.wantStatus {
				t.Errorf("status = %d, want %d (err %v)", got, tt.wantStatus, err)
			}
		})
	}

	updated, err := employees.Update(ctx, sess.Employees(), admin, bob.ID, EmployeeInput{Name: "Robert", Email: "bob@example.com", Position: strPtr("Engineer")})
	if err != nil || updated.Name != "Robert" || *updated.Position != "Engineer" {
		t.Fatalf("Update() = %+v, %v", updated, err)
	}

	staff, err := departments.ListEmployees(ctx, sess.Departments(), sess.Employees(), admin, dept.ID, Page{Limit: 10})
	if err != nil || len(staff) != 1 || staff[0].ID != alice.ID {
		t.Errorf("ListEmployees() = %+v, %v", staff, err)
	}

	deleted, err := employees.Delete(ctx, sess.Employees(), admin, alice.ID)
	if err != nil || deleted.ID != alice.ID {
		t.Fatalf("Delete() = %+v, %v", deleted, err)
	}
	if _, err := employees.Get(ctx, sess.Employees(), admin, alice.ID); statusOf(err) != http.StatusNotFound {
		t.Errorf("Get(deleted) status = %d, want 404", statusOf(err))
	}
	if _, err := departments.Delete(ctx, sess.Departments(), admin, dept.ID); err != nil {
		t.Errorf("Delete(empty department) error = %v", err)
	}

	all, err := employees.List(ctx, sess.Employees(), admin, nil, Page{Limit: 10})
	if err != nil || len(all) != 1 {
		t.Errorf("List() = %+v, %v", all, err)
	}
	if n := len(rec.types()); n != 6 {
		t.Errorf("published %d events, want 6: %v", n, rec.types())
	}
}

func TestDepartmentAccess(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)
	svc := NewDepartmentService(RecordDependencies{})

	dept, err := svc.Create(ctx, sess.Departments(), admin, "Finance")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name       string
		call       func() error
		wantStatus int
	}{
		{"admin reads", func() error { _, err := svc.Get(ctx, sess.Departments(), admin, dept.ID); return err }, http.StatusOK},
		{"employee reads", func() error { _, err := svc.Get(ctx, sess.Departments(), employee, dept.ID); return err }, http.StatusForbidden},
		{"employee lists", func() error { _, err := svc.List(ctx, sess.Departments(), employee, Page{Limit: 10}); return err }, http.StatusForbidden},
		{"duplicate name", func() error { _, err := svc.Create(ctx, sess.Departments(), admin, "Finance"); return err }, http.StatusConflict},
		{"rename", func() error { _, err := svc.Update(ctx, sess.Departments(), admin, dept.ID, "Accounting"); return err }, http.StatusOK},
		{"rename missing", func() error { _, err := svc.Update(ctx, sess.Departments(), admin, 777, "Ghost"); return err }, http.StatusNotFound},
		{"employees of missing department", func() error {
			_, err := svc.ListEmployees(ctx, sess.Departments(), sess.Employees(), admin, 777, Page{Limit: 10})
			return err
		}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusOf(tt.call()); got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

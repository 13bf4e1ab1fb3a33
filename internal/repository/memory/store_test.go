package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/repository"
)

func strPtr(s string) *string { return &s }

func TestStoreConstraints(t *testing.T) {
	ctx := context.Background()
	sess, err := New().Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer sess.Release()

	if err := sess.Users().Create(ctx, &domain.User{Username: "a@x.com", Role: domain.RoleEmployee}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := sess.Users().Create(ctx, &domain.User{Username: "a@x.com", Role: domain.RoleAdmin}); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("duplicate username error = %v, want ErrConflict", err)
	}

	dept := &domain.Department{Name: "Engineering"}
	if err := sess.Departments().Create(ctx, dept); err != nil {
		t.Fatalf("create department: %v", err)
	}

	missingDept := int64(999)
	tests := []struct {
		name string
		emp  domain.Employee
		want error
	}{
		{"valid", domain.Employee{Name: "A", Email: "a@x.com", DepartmentID: &dept.ID, Username: strPtr("a@x.com")}, nil},
		{"duplicate email", domain.Employee{Name: "B", Email: "A@X.com"}, repository.ErrConflict},
		{"unknown department", domain.Employee{Name: "C", Email: "c@x.com", DepartmentID: &missingDept}, repository.ErrReferenced},
		{"unknown account", domain.Employee{Name: "D", Email: "d@x.com", Username: strPtr("ghost")}, repository.ErrReferenced},
		{"account already linked", domain.Employee{Name: "E", Email: "e@x.com", Username: strPtr("a@x.com")}, repository.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := tt.emp
			err := sess.Employees().Create(ctx, &emp)
			if tt.want == nil && err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("Create() error = %v, want %v", err, tt.want)
			}
		})
	}

	if err := sess.Departments().Delete(ctx, dept.ID); !errors.Is(err, repository.ErrReferenced) {
		t.Errorf("delete referenced department error = %v, want ErrReferenced", err)
	}
	if _, err := sess.Employees().GetByID(ctx, 12345); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestEmployeeListPaging(t *testing.T) {
	ctx := context.Background()
	store := New()
	sess, _ := store.Acquire(ctx)
	defer sess.Release()

	dept := &domain.Department{Name: "Ops"}
	if err := sess.Departments().Create(ctx, dept); err != nil {
		t.Fatal(err)
	}
	for i, email := range []string{"1@x.com", "2@x.com", "3@x.com", "4@x.com"} {
		emp := &domain.Employee{Name: email, Email: email}
		if i%2 == 0 {
			emp.DepartmentID = &dept.ID
		}
		if err := sess.Employees().Create(ctx, emp); err != nil {
			t.Fatal(err)
		}
	}

	got, _ := sess.Employees().List(ctx, repository.EmployeeFilter{Offset: 1, Limit: 2})
	if len(got) != 2 || got[0].Email != "2@x.com" || got[1].Email != "3@x.com" {
		t.Errorf("page = %+v", got)
	}
	got, _ = sess.Employees().List(ctx, repository.EmployeeFilter{Offset: 10})
	if len(got) != 0 {
		t.Errorf("offset past end returned %d items", len(got))
	}
	got, _ = sess.Employees().List(ctx, repository.EmployeeFilter{DepartmentID: &dept.ID})
	if len(got) != 2 {
		t.Errorf("department filter returned %d items, want 2", len(got))
	}
}

func TestLoginAttemptsWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	attempts := NewLoginAttempts(func() time.Time { return now })

	for i := 0; i < 3; i++ {
		if _, err := attempts.RecordFailure(ctx, "bob", time.Minute); err != nil {
			t.Fatal(err)
		}
	}
	if n, _ := attempts.Failures(ctx, "bob"); n != 3 {
		t.Errorf("Failures = %d, want 3", n)
	}

	now = now.Add(time.Minute)
	if n, _ := attempts.Failures(ctx, "bob"); n != 0 {
		t.Errorf("Failures after window = %d, want 0", n)
	}

	_, _ = attempts.RecordFailure(ctx, "bob", time.Minute)
	_ = attempts.Reset(ctx, "bob")
	if n, _ := attempts.Failures(ctx, "bob"); n != 0 {
		t.Errorf("Failures after reset = %d, want 0", n)
	}
}

func TestLoginAttemptsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	attempts := NewLoginAttempts(nil)

	for i := 0; i < 5; i++ {
		_, _ = attempts.RecordFailure(ctx, "ROOT", time.Minute)
	}
	if n, _ := attempts.Failures(ctx, "root"); n != 0 {
		t.Errorf("failures for ROOT counted against root: %d", n)
	}
	if n, _ := attempts.Failures(ctx, "ROOT"); n != 5 {
		t.Errorf("Failures(ROOT) = %d, want 5", n)
	}
}

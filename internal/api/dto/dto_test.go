package dto

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/hr-service/internal/domain"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

func strPtr(s string) *string { return &s }

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		payload   any
		wantField string
	}{
		{"valid employee", &EmployeeRequest{Name: "A", Email: "a@example.com", DateJoined: strPtr("2024-02-29")}, ""},
		{"missing name", &EmployeeRequest{Email: "a@example.com"}, "name"},
		{"bad email", &EmployeeRequest{Name: "A", Email: "not-an-email"}, "email"},
		{"bad date", &EmployeeRequest{Name: "A", Email: "a@example.com", DateJoined: strPtr("29/02/2024")}, "date_joined"},
		{"non positive department", &EmployeeRequest{Name: "A", Email: "a@example.com", DepartmentID: new(int64)}, "department_id"},
		{"valid user", &UserCreateRequest{Username: "bob", Password: "password1", Role: "employee"}, ""},
		{"short password", &UserCreateRequest{Username: "bob", Password: "short", Role: "employee"}, "password"},
		{"password too long", &UserCreateRequest{Username: "bob", Password: strings.Repeat("a", 73), Role: "employee"}, "password"},
		{"unknown role", &UserCreateRequest{Username: "bob", Password: "password1", Role: "root"}, "role"},
		{"empty login", &LoginRequest{Password: "x"}, "username"},
		{"empty department", &DepartmentRequest{}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.payload)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			var de *apperrors.DomainError
			if !errors.As(err, &de) || de.Code != "VALIDATION_FAILED" {
				t.Fatalf("Validate() error = %v, want VALIDATION_FAILED", err)
			}
			fields, _ := de.Details["fields"].(map[string]string)
			if _, ok := fields[tt.wantField]; !ok {
				t.Errorf("fields = %v, want entry for %q", fields, tt.wantField)
			}
		})
	}
}

func TestEmployeeConversions(t *testing.T) {
	want := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		joined  *string
		want    *time.Time
		wantErr bool
	}{
		{"date set", strPtr("2023-05-01"), &want, false},
		{"absent", nil, nil, false},
		{"empty", strPtr(""), nil, false},
		{"malformed", strPtr("01/05/2023"), nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EmployeeRequest{Name: "A", Email: "a@example.com", DateJoined: tt.joined}.JoinedDate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("JoinedDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if (got == nil) != (tt.want == nil) || (got != nil && !got.Equal(*tt.want)) {
				t.Errorf("JoinedDate() = %v, want %v", got, tt.want)
			}
		})
	}

	resp := NewEmployeeResponse(&domain.Employee{ID: 3, Name: "A", DateJoined: &want})
	if resp.DateJoined == nil || *resp.DateJoined != "2023-05-01" {
		t.Errorf("response DateJoined = %v", resp.DateJoined)
	}
	if NewEmployeeResponse(&domain.Employee{ID: 4}).DateJoined != nil {
		t.Error("nil date should stay nil")
	}
}

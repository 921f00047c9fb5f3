package leads

import (
	"strings"
	"testing"
)

func validEnrollment() map[string]string {
	return map[string]string{
		"user_name":    "Ali Raza",
		"user_email":   "ali@example.com",
		"user_contact": "03001234567",
		"user_address": "House 4, Street 9, Lahore",
		"user_message": "Looking for maths tuition.",
	}
}

func validIntake() map[string]string {
	return map[string]string{
		"child_name":    "Ali",
		"guardian_name": "Ahmed",
		"contact_no":    "+92 300 1234567",
	}
}

func TestEnrollmentValidateAcceptsCompleteInput(t *testing.T) {
	t.Parallel()

	if errs := Enrollment.Validate(validEnrollment()); errs != nil {
		t.Fatalf("Validate() = %v, want nil", errs)
	}
}

func TestEnrollmentValidateRejectsEmptyRequiredFields(t *testing.T) {
	t.Parallel()

	errs := Enrollment.Validate(map[string]string{"user_name": "   "})
	if len(errs) != len(Enrollment.Fields) {
		t.Fatalf("errors = %d, want %d: %v", len(errs), len(Enrollment.Fields), errs)
	}
	got := errs["user_name"]
	if got.Key != KeyRequired || got.Message != "Name is required" {
		t.Fatalf("user_name error = %+v", got)
	}
}

func TestEnrollmentValidateRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		field   string
		value   string
		wantKey string
		wantMsg string
	}{
		{name: "email without at", field: "user_email", value: "ali.example.com", wantKey: KeyEmail, wantMsg: "Invalid email address"},
		{name: "email with space", field: "user_email", value: "ali @example.com", wantKey: KeyEmail, wantMsg: "Invalid email address"},
		{name: "short contact", field: "user_contact", value: "12345", wantKey: KeyTooShort, wantMsg: "Too short"},
		{name: "address missing", field: "user_address", value: "", wantKey: KeyRequired, wantMsg: "Address is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			values := validEnrollment()
			values[tc.field] = tc.value
			errs := Enrollment.Validate(values)
			if len(errs) != 1 {
				t.Fatalf("errors = %v, want exactly one", errs)
			}
			got, ok := errs[tc.field]
			if !ok {
				t.Fatalf("missing error for %s: %v", tc.field, errs)
			}
			if got.Key != tc.wantKey || got.Message != tc.wantMsg {
				t.Fatalf("error = %+v, want key %q message %q", got, tc.wantKey, tc.wantMsg)
			}
		})
	}
}

func TestIntakeValidateRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(map[string]string)
		wantErr string
		wantKey string
	}{
		{name: "optional fields empty", mutate: func(map[string]string) {}},
		{name: "phone with dashes", mutate: func(v map[string]string) { v["contact_no"] = "0300-123-4567" }},
		{name: "phone letters", mutate: func(v map[string]string) { v["contact_no"] = "call me" }, wantErr: "contact_no", wantKey: KeyPhone},
		{name: "phone too short", mutate: func(v map[string]string) { v["contact_no"] = "+92 30" }, wantErr: "contact_no", wantKey: KeyPhone},
		{name: "valid email", mutate: func(v map[string]string) { v["email"] = "guardian@example.com" }},
		{name: "email without tld", mutate: func(v map[string]string) { v["email"] = "guardian@example" }, wantErr: "email", wantKey: KeyEmail},
		{name: "guardian missing", mutate: func(v map[string]string) { delete(v, "guardian_name") }, wantErr: "guardian_name", wantKey: KeyRequired},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			values := validIntake()
			tc.mutate(values)
			errs := Intake.Validate(values)
			if tc.wantErr == "" {
				if errs != nil {
					t.Fatalf("Validate() = %v, want nil", errs)
				}
				return
			}
			got, ok := errs[tc.wantErr]
			if !ok || got.Key != tc.wantKey {
				t.Fatalf("errors = %v, want %s with key %s", errs, tc.wantErr, tc.wantKey)
			}
		})
	}
}

func TestIntakeRequiredMessageUsesLabel(t *testing.T) {
	t.Parallel()

	errs := Intake.Validate(nil)
	if got := errs["child_name"].Message; got != "Child's Full Name is required" {
		t.Fatalf("message = %q", got)
	}
	if _, ok := errs["email"]; ok {
		t.Fatal("optional email should not be required")
	}
}

func TestNormalizeTrimsAndDropsUnknownFields(t *testing.T) {
	t.Parallel()

	got := Intake.Normalize(map[string]string{"child_name": "  Ali ", "extra": "x"})
	if got["child_name"] != "Ali" {
		t.Fatalf("child_name = %q", got["child_name"])
	}
	if _, ok := got["extra"]; ok {
		t.Fatal("unknown field kept")
	}
	if len(got) != len(Intake.Fields) {
		t.Fatalf("len = %d, want %d", len(got), len(Intake.Fields))
	}
}

func TestFormsAndFieldErrorsString(t *testing.T) {
	t.Parallel()

	if forms := Forms(); len(forms) != 2 || forms[1].Template != "intake" {
		t.Fatalf("Forms() = %+v", forms)
	}
	if Enrollment.KeepOnFailure != true || Intake.KeepOnFailure != false {
		t.Fatal("unexpected failure retention policy")
	}

	errs := Enrollment.Validate(nil)
	if msg := errs.Error(); !strings.HasPrefix(msg, "invalid fields: user_address") {
		t.Fatalf("Error() = %q", msg)
	}
}

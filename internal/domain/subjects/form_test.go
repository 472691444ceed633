package subjects

import (
	"strings"
	"testing"
)

func TestForm_Validate_OK(t *testing.T) {
	f := Form{Name: "Maths", Code: "M1", LabPresent: 2, LabTotal: 4, TheoryPresent: 18, TheoryTotal: 20}
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestForm_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		form    Form
		wantSub string
	}{
		{"missing code", Form{Name: "Maths", TheoryPresent: 1, TheoryTotal: 2}, "Code"},
		{"present above total", Form{Name: "Maths", Code: "M1", LabPresent: 5, LabTotal: 4}, "LabPresent"},
		{"negative total", Form{Name: "Maths", Code: "M1", TheoryPresent: -3, TheoryTotal: -1}, "TheoryTotal"},
		{"cyrillic code", Form{Name: "Матан", Code: strings.Repeat("Ж", MaxCodeLen)}, "Code"},
		{"code too long", Form{Name: "Maths", Code: strings.Repeat("M", MaxCodeLen+1)}, "Code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %s", err, tt.wantSub)
			}
		})
	}
}

func TestForm_Validate_CodeFitsInBytes(t *testing.T) {
	f := Form{Name: "Maths", Code: strings.Repeat("M", MaxCodeLen)}
	if err := f.Validate(); err != nil {
		t.Fatalf("code of %d ascii chars must pass: %v", MaxCodeLen, err)
	}
	if len(f.Code) != MaxCodeLen {
		t.Fatalf("code is %d bytes, want %d", len(f.Code), MaxCodeLen)
	}
}

func TestForm_Subject_TrimsIdentity(t *testing.T) {
	s := Form{Name: "  Maths ", Code: " M1", TheoryPresent: 18, TheoryTotal: 20}.Subject(42)
	if s.Name() != "Maths" || s.Code() != "M1" {
		t.Errorf("identity not trimmed: %q %q", s.Name(), s.Code())
	}
	if s.LastUpdated() != 42 || s.Attendance() != 90 {
		t.Errorf("unexpected subject: %+v", s)
	}
}

func TestParseCounts(t *testing.T) {
	p, tot, err := ParseCounts(" 18 / 20 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != 18 || tot != 20 {
		t.Errorf("got %d/%d, want 18/20", p, tot)
	}

	for _, in := range []string{"18", "a/20", "21/20", "-1/2", "1/2/3"} {
		if _, _, err := ParseCounts(in); err == nil {
			t.Errorf("ParseCounts(%q): expected error", in)
		}
	}
}

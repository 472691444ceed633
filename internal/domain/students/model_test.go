package students

import "testing"

func TestStudent_DisplayName(t *testing.T) {
	tests := []struct {
		s    Student
		want string
	}{
		{Student{FirstName: "Abhijit", Username: "abhi"}, "Abhijit"},
		{Student{Username: "abhi"}, "@abhi"},
		{Student{}, "студент"},
	}
	for _, tt := range tests {
		if got := tt.s.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%+v) = %q, want %q", tt.s, got, tt.want)
		}
	}
}

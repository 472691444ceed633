package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/Spok95/attendance-bot/internal/domain/subjects"
)

func TestSubjectCard(t *testing.T) {
	s := subjects.New("Maths", "M1", 0, 0, 0, 18, 20)

	got := subjectCard(s, 75, false, subjects.ApproxTermClasses, time.UTC)
	want := "Maths (M1)\n" +
		"Лаб.: 0/0  Теория: 18/20\n" +
		"Посещаемость: 90.00%\n\n" +
		"Bunk 1 more class for 85% attendance\n" +
		"Need 20 more classes for 95% attendance"
	if got != want {
		t.Errorf("card:\n got %q\nwant %q", got, want)
	}
}

func TestSubjectCard_NoClassesHasNoAdvice(t *testing.T) {
	got := subjectCard(subjects.New("Empty", "E1", 0, 0, 0, 0, 0), 75, true, subjects.ApproxTermClasses, time.UTC)
	if strings.Contains(got, "\n\n") {
		t.Errorf("card without classes must not have an advice block: %q", got)
	}
}

func TestSubjectCard_LastUpdated(t *testing.T) {
	s := subjects.New("Maths", "M1", 1708455600000, 0, 0, 18, 20)
	got := subjectCard(s, 75, false, subjects.ApproxTermClasses, time.UTC)
	if !strings.Contains(got, "Обновлено: 20.02.2024 19:00") {
		t.Errorf("last updated line missing: %q", got)
	}
}

func TestSubjectCard_LastUpdatedInLocation(t *testing.T) {
	s := subjects.New("Maths", "M1", 1708455600000, 0, 0, 18, 20)
	msk := time.FixedZone("MSK", 3*60*60)
	got := subjectCard(s, 75, false, subjects.ApproxTermClasses, msk)
	if !strings.Contains(got, "Обновлено: 20.02.2024 22:00") {
		t.Errorf("last updated must be shown in local time: %q", got)
	}
}

func TestSubjectsSummary(t *testing.T) {
	list := []subjects.Subject{
		subjects.New("Maths", "M1", 0, 0, 0, 18, 20),
		subjects.New("Bio", "B1", 0, 0, 0, 15, 20),
	}
	got := subjectsSummary(list, 75)
	want := "Предметов: 2\nВсего: 33/40 (82.50%)\nПорог: 75%\nНа пороге или ниже: 1"
	if got != want {
		t.Errorf("summary:\n got %q\nwant %q", got, want)
	}

	if empty := subjectsSummary(nil, 75); !strings.Contains(empty, "Предметов пока нет") {
		t.Errorf("empty summary: %q", empty)
	}
}

func TestBadge(t *testing.T) {
	if b := badge(subjects.New("A", "A", 0, 0, 0, 0, 0), 75); b != "⚪️" {
		t.Errorf("no classes badge: %q", b)
	}
	if b := badge(subjects.New("A", "A", 0, 0, 0, 15, 20), 75); b != "🔴" {
		t.Errorf("at minimum badge: %q", b)
	}
	if b := badge(subjects.New("A", "A", 0, 0, 0, 18, 20), 75); b != "🟢" {
		t.Errorf("above minimum badge: %q", b)
	}
}

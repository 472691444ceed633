package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/Spok95/attendance-bot/internal/domain/subjects"
)

// Бейдж посещаемости относительно порога
func badge(s subjects.Subject, minimum int) string {
	switch {
	case s.Total() == 0:
		return "⚪️"
	case int(s.Attendance()) <= minimum:
		return "🔴"
	default:
		return "🟢"
	}
}

// subjectCard карточка предмета с советами.
func subjectCard(s subjects.Subject, minimum int, extended bool, termClasses int, loc *time.Location) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%s)\n", s.Name(), s.Code()))
	sb.WriteString(fmt.Sprintf("Лаб.: %d/%d  Теория: %d/%d\n",
		s.LabPresent(), s.LabTotal(), s.TheoryPresent(), s.TheoryTotal()))
	sb.WriteString(fmt.Sprintf("Посещаемость: %.2f%%", s.Attendance()))
	if s.LastUpdated() > 0 {
		sb.WriteString("\nОбновлено: " + time.UnixMilli(s.LastUpdated()).In(loc).Format("02.01.2006 15:04"))
	}
	if advice := s.BunkStatsForTerm(minimum, extended, termClasses); advice != "" {
		sb.WriteString("\n\n")
		sb.WriteString(advice)
	}
	return sb.String()
}

// subjectsSummary общий итог по всем предметам.
func subjectsSummary(list []subjects.Subject, minimum int) string {
	if len(list) == 0 {
		return "Предметов пока нет. Нажмите «" + btnAdd + "» или загрузите Excel."
	}
	var present, total, low int
	for _, s := range list {
		present += s.Present()
		total += s.Total()
		if s.Total() > 0 && int(s.Attendance()) <= minimum {
			low++
		}
	}
	overall := subjects.New("", "", 0, 0, 0, present, total).Attendance()
	text := fmt.Sprintf("Предметов: %d\nВсего: %d/%d (%.2f%%)\nПорог: %d%%", len(list), present, total, overall, minimum)
	if low > 0 {
		text += fmt.Sprintf("\nНа пороге или ниже: %d", low)
	}
	return text
}

func settingsText(minimum int, extended bool) string {
	mode := "ближайшие пороги"
	if extended {
		mode = "все пороги"
	}
	return fmt.Sprintf("Порог: %d%%\nСоветы: %s", minimum, mode)
}

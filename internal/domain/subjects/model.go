package subjects

import (
	"fmt"
	"math"
	"strings"
)

// ApproxTermClasses примерное число занятий за семестр.
// Совет «Need ...» не выдаётся, если с ним общее число занятий превысит этот потолок.
const ApproxTermClasses = 55

const doNotBunk = "DO NOT BUNK ANY MORE CLASSES"

// Subject неизменяемый снимок посещаемости по предмету.
type Subject struct {
	name          string
	code          string
	lastUpdated   int64
	labPresent    int
	labTotal      int
	theoryPresent int
	theoryTotal   int
}

// New не проверяет входные значения: present <= total и неотрицательность обеспечивает вызывающий.
func New(name, code string, lastUpdated int64, labPresent, labTotal, theoryPresent, theoryTotal int) Subject {
	return Subject{
		name:          name,
		code:          code,
		lastUpdated:   lastUpdated,
		labPresent:    labPresent,
		labTotal:      labTotal,
		theoryPresent: theoryPresent,
		theoryTotal:   theoryTotal,
	}
}

func (s Subject) Name() string       { return s.name }
func (s Subject) Code() string       { return s.code }
func (s Subject) LastUpdated() int64 { return s.lastUpdated }
func (s Subject) LabPresent() int    { return s.labPresent }
func (s Subject) LabTotal() int      { return s.labTotal }
func (s Subject) TheoryPresent() int { return s.theoryPresent }
func (s Subject) TheoryTotal() int   { return s.theoryTotal }

func (s Subject) Present() int { return s.labPresent + s.theoryPresent }
func (s Subject) Total() int   { return s.labTotal + s.theoryTotal }
func (s Subject) Absent() int  { return s.Total() - s.Present() }

// Attendance возвращает процент посещаемости без округления; 0 при отсутствии занятий.
func (s Subject) Attendance() float64 {
	total := float64(s.Total())
	if total > 0 {
		return float64(s.Present()) / total * 100
	}
	return 0.0
}

// Advice строки советов до сборки в текст.
// Обе группы упорядочены по возрастанию порога.
type Advice struct {
	Bunk []string
	Need []string
}

// Advice считает советы по порогам от minimumAttendance с шагом 5%.
// Порог 0% даёт бесконечное число занятий, такая строка не выдаётся.
func (s Subject) Advice(minimumAttendance, termClasses int) Advice {
	var adv Advice

	attendance := int(s.Attendance())
	classes := s.Total()
	present := s.Present()
	absent := s.Absent()

	if classes != 0 && attendance <= minimumAttendance {
		adv.Bunk = append(adv.Bunk, doNotBunk)
	} else {
		more := ""
		if absent != 0 {
			more = " more"
		}
		lastDays := -1
		for a := minimumAttendance; a < attendance; a += 5 {
			days, ok := floorInt(float64(100*present)/float64(a) - float64(classes))
			if !ok {
				continue
			}
			if days == lastDays {
				continue
			}
			lastDays = days
			if days > 0 {
				adv.Bunk = append(adv.Bunk, fmt.Sprintf("Bunk %d%s %s for %d%% attendance",
					days, more, plural(days), a))
			}
		}
	}

	if classes != 0 {
		next := (attendance + 4) / 5 * 5
		if next == attendance {
			next = attendance + 5
		}
		if next < minimumAttendance {
			next = minimumAttendance
		}
		lastDays := -1
		for a := next; a <= 95; a += 5 {
			days, ok := floorInt(float64(a*classes-100*present) / float64(100-a))
			if !ok {
				continue
			}
			if days == lastDays {
				continue
			}
			lastDays = days
			if days > 0 && days+classes <= termClasses {
				adv.Need = append(adv.Need, fmt.Sprintf("Need %d more %s for %d%% attendance",
					days, plural(days), a))
			}
		}
	}

	return adv
}

// Text собирает советы: в расширенном режиме все строки,
// иначе последняя строка Bunk и первая строка Need.
func (a Advice) Text(extended bool) string {
	var lines []string
	if extended {
		lines = append(lines, a.Bunk...)
		lines = append(lines, a.Need...)
	} else {
		if len(a.Bunk) > 0 {
			lines = append(lines, a.Bunk[len(a.Bunk)-1])
		}
		if len(a.Need) > 0 {
			lines = append(lines, a.Need[0])
		}
	}
	return strings.Join(lines, "\n")
}

// BunkStats советы с потолком ApproxTermClasses.
func (s Subject) BunkStats(minimumAttendance int, extended bool) string {
	return s.BunkStatsForTerm(minimumAttendance, extended, ApproxTermClasses)
}

func (s Subject) BunkStatsForTerm(minimumAttendance int, extended bool, termClasses int) string {
	return s.Advice(minimumAttendance, termClasses).Text(extended)
}

func plural(n int) string {
	if n == 1 {
		return "class"
	}
	return "classes"
}

// floorInt: ok=false для Inf/NaN (порог 0%).
func floorInt(v float64) (int, bool) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return int(math.Floor(v)), true
}

package students

import "time"

const DefaultMinimumAttendance = 75

// Student пользователь Telegram со своими предметами.
type Student struct {
	ID                int64
	TelegramID        int64
	Username          string
	FirstName         string
	LastName          string
	MinimumAttendance int  // порог, от которого считаются советы
	ExtendedStats     bool // показывать все пороги, а не ближайшие
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Telegram struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// DisplayName имя для приветствия.
func (s Student) DisplayName() string {
	switch {
	case s.FirstName != "":
		return s.FirstName
	case s.Username != "":
		return "@" + s.Username
	default:
		return "студент"
	}
}

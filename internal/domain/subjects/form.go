package subjects

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// MaxCodeLen предел длины кода в байтах: код уходит в callback_data,
// а Telegram принимает не больше 64 байт.
const MaxCodeLen = 32

// Form данные предмета, введённые в чате или загруженные из Excel.
// Subject сам ничего не проверяет, поэтому проверка здесь.
type Form struct {
	Name          string `validate:"required,max=120"`
	Code          string `validate:"required,printascii,max=32"`
	LabPresent    int    `validate:"min=0,ltefield=LabTotal"`
	LabTotal      int    `validate:"min=0"`
	TheoryPresent int    `validate:"min=0,ltefield=TheoryTotal"`
	TheoryTotal   int    `validate:"min=0"`
}

func (f Form) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: обязательное поле", fe.Field()))
		case "ltefield":
			msgs = append(msgs, fmt.Sprintf("%s: посещено больше, чем проведено", fe.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s: не может быть отрицательным", fe.Field()))
		case "printascii":
			msgs = append(msgs, fmt.Sprintf("%s: только латиница, цифры и знаки", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: некорректное значение", fe.Field()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

func (f Form) Subject(lastUpdated int64) Subject {
	return New(strings.TrimSpace(f.Name), strings.TrimSpace(f.Code), lastUpdated,
		f.LabPresent, f.LabTotal, f.TheoryPresent, f.TheoryTotal)
}

// ParseCounts разбирает «посещено/проведено», например "18/20".
func ParseCounts(s string) (present, total int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("ожидается формат посещено/проведено, получено %q", s)
	}
	present, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("parse present: %w", err)
	}
	total, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("parse total: %w", err)
	}
	if present < 0 || total < 0 || present > total {
		return 0, 0, fmt.Errorf("некорректные значения %d/%d", present, total)
	}
	return present, total, nil
}

package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Spok95/attendance-bot/internal/dialog"
	"github.com/Spok95/attendance-bot/internal/domain/subjects"
	"github.com/Spok95/attendance-bot/internal/infra/metrics"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) showSubjects(ctx context.Context, chatID int64, from *tgbotapi.User) {
	st, err := b.student(ctx, from)
	if err != nil {
		b.log.Error("load student failed", "tg_id", from.ID, "err", err)
		b.reply(chatID, "Ошибка загрузки профиля")
		return
	}
	list, err := b.subjects.List(ctx, st.ID)
	if err != nil {
		b.log.Error("list subjects failed", "student_id", st.ID, "err", err)
		b.reply(chatID, "Ошибка загрузки предметов")
		return
	}

	m := tgbotapi.NewMessage(chatID, subjectsSummary(list, st.MinimumAttendance))
	if len(list) > 0 {
		m.ReplyMarkup = subjectsKeyboard(list, st.MinimumAttendance)
	}
	b.send(m)
}

func (b *Bot) showSubjectCard(ctx context.Context, chatID int64, from *tgbotapi.User, code string) {
	st, err := b.student(ctx, from)
	if err != nil {
		b.log.Error("load student failed", "tg_id", from.ID, "err", err)
		b.reply(chatID, "Ошибка загрузки профиля")
		return
	}
	s, err := b.subjects.Get(ctx, st.ID, code)
	if err != nil {
		if errors.Is(err, subjects.ErrNotFound) {
			b.reply(chatID, fmt.Sprintf("Предмет %s не найден.", code))
			return
		}
		b.log.Error("get subject failed", "student_id", st.ID, "code", code, "err", err)
		b.reply(chatID, "Ошибка загрузки предмета")
		return
	}

	b.countAdvice(s, st.MinimumAttendance, st.ExtendedStats)
	m := tgbotapi.NewMessage(chatID, subjectCard(s, st.MinimumAttendance, st.ExtendedStats, b.settings.TermClasses, b.settings.Location))
	m.ReplyMarkup = subjectKeyboard(s.Code())
	b.send(m)
}

func (b *Bot) countAdvice(s subjects.Subject, minimum int, extended bool) {
	metrics.AdviceTotal.WithLabelValues(metrics.Mode(extended)).Inc()
	if s.Total() != 0 && int(s.Attendance()) <= minimum {
		metrics.DoNotBunkTotal.Inc()
	}
}

func (b *Bot) startAddSubject(ctx context.Context, chatID int64) {
	_ = b.states.Set(ctx, chatID, dialog.StateAddName, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID, "Введите название предмета. Если предмет с таким кодом уже есть, счётчики обновятся.")
	m.ReplyMarkup = navKeyboard(true)
	b.send(m)
}

func (b *Bot) finishAddSubject(ctx context.Context, chatID int64, from *tgbotapi.User, p dialog.Payload) {
	name, _ := dialog.GetString(p, "name")
	code, _ := dialog.GetString(p, "code")
	labP, _ := dialog.GetInt(p, "lab_present")
	labT, _ := dialog.GetInt(p, "lab_total")
	theoryP, _ := dialog.GetInt(p, "theory_present")
	theoryT, _ := dialog.GetInt(p, "theory_total")

	form := subjects.Form{
		Name:          name,
		Code:          code,
		LabPresent:    labP,
		LabTotal:      labT,
		TheoryPresent: theoryP,
		TheoryTotal:   theoryT,
	}
	if err := form.Validate(); err != nil {
		_ = b.states.Reset(ctx, chatID)
		b.reply(chatID, "Предмет не сохранён: "+err.Error())
		return
	}

	st, err := b.student(ctx, from)
	if err != nil {
		b.log.Error("load student failed", "tg_id", from.ID, "err", err)
		b.reply(chatID, "Ошибка загрузки профиля")
		return
	}
	s := form.Subject(time.Now().UnixMilli())
	if err := b.subjects.Upsert(ctx, st.ID, s); err != nil {
		b.log.Error("upsert subject failed", "student_id", st.ID, "code", s.Code(), "err", err)
		b.reply(chatID, "Ошибка: не удалось сохранить предмет")
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.log.Info("subject saved", "student_id", st.ID, "code", s.Code())

	b.countAdvice(s, st.MinimumAttendance, st.ExtendedStats)
	m := tgbotapi.NewMessage(chatID, "Сохранено.\n\n"+subjectCard(s, st.MinimumAttendance, st.ExtendedStats, b.settings.TermClasses, b.settings.Location))
	m.ReplyMarkup = studentReplyKeyboard()
	b.send(m)
}

func (b *Bot) askDelete(ctx context.Context, chatID int64, code string) {
	// такой код не мог быть сохранён и не влезет в callback_data
	if len(code) > subjects.MaxCodeLen {
		b.reply(chatID, fmt.Sprintf("Предмет %s не найден.", code))
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateDeleteConfirm, dialog.Payload{"code": code})
	m := tgbotapi.NewMessage(chatID, fmt.Sprintf("Удалить предмет %s?", code))
	m.ReplyMarkup = deleteConfirmKeyboard(code)
	b.send(m)
}

func (b *Bot) deleteSubject(ctx context.Context, chatID int64, msgID int, from *tgbotapi.User, code string) {
	defer func() { _ = b.states.Reset(ctx, chatID) }()

	st, err := b.student(ctx, from)
	if err != nil {
		b.log.Error("load student failed", "tg_id", from.ID, "err", err)
		b.editTextAndClear(chatID, msgID, "Ошибка загрузки профиля")
		return
	}
	if err := b.subjects.Delete(ctx, st.ID, code); err != nil {
		if errors.Is(err, subjects.ErrNotFound) {
			b.editTextAndClear(chatID, msgID, fmt.Sprintf("Предмет %s не найден.", code))
			return
		}
		b.log.Error("delete subject failed", "student_id", st.ID, "code", code, "err", err)
		b.editTextAndClear(chatID, msgID, "Ошибка удаления")
		return
	}
	b.editTextAndClear(chatID, msgID, fmt.Sprintf("Предмет %s удалён.", code))
}

func (b *Bot) askMinimum(ctx context.Context, chatID int64, from *tgbotapi.User) {
	st, err := b.student(ctx, from)
	if err != nil {
		b.log.Error("load student failed", "tg_id", from.ID, "err", err)
		b.reply(chatID, "Ошибка загрузки профиля")
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateSetMinimum, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"Сейчас порог %d%%. Введите новый минимальный процент посещаемости (1–99).", st.MinimumAttendance))
	m.ReplyMarkup = navKeyboard(true)
	b.send(m)
}

func (b *Bot) saveMinimum(ctx context.Context, chatID int64, from *tgbotapi.User, minimum int) {
	st, err := b.student(ctx, from)
	if err != nil {
		b.log.Error("load student failed", "tg_id", from.ID, "err", err)
		b.reply(chatID, "Ошибка загрузки профиля")
		return
	}
	if err := b.students.SetMinimumAttendance(ctx, st.ID, minimum); err != nil {
		b.log.Error("set minimum failed", "student_id", st.ID, "err", err)
		b.reply(chatID, "Ошибка: порог не сохранён")
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.reply(chatID, "Готово.\n"+settingsText(minimum, st.ExtendedStats))
}

func (b *Bot) toggleExtended(ctx context.Context, chatID int64, from *tgbotapi.User) {
	st, err := b.student(ctx, from)
	if err != nil {
		b.log.Error("load student failed", "tg_id", from.ID, "err", err)
		b.reply(chatID, "Ошибка загрузки профиля")
		return
	}
	extended := !st.ExtendedStats
	if err := b.students.SetExtendedStats(ctx, st.ID, extended); err != nil {
		b.log.Error("set extended failed", "student_id", st.ID, "err", err)
		b.reply(chatID, "Ошибка: настройка не сохранена")
		return
	}
	b.reply(chatID, "Готово.\n"+settingsText(st.MinimumAttendance, extended))
}

package bot

import (
	"fmt"

	"github.com/Spok95/attendance-bot/internal/domain/subjects"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	btnSubjects = "Мои предметы"
	btnAdd      = "Добавить предмет"
	btnMinimum  = "Минимальный порог"
	btnExtended = "Подробные советы"
	btnExport   = "Выгрузить Excel"
	btnImport   = "Загрузить Excel"
)

func navKeyboard(cancel bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	if cancel {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✖️ Отменить", "nav:cancel"))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// studentReplyKeyboard Нижняя панель студента
func studentReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(btnSubjects)},
			{tgbotapi.NewKeyboardButton(btnAdd), tgbotapi.NewKeyboardButton(btnMinimum)},
			{tgbotapi.NewKeyboardButton(btnExtended)},
			{tgbotapi.NewKeyboardButton(btnExport), tgbotapi.NewKeyboardButton(btnImport)},
		},
	}
}

// subjectsKeyboard по кнопке на предмет, в callback код предмета.
func subjectsKeyboard(list []subjects.Subject, minimum int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(list))
	for _, s := range list {
		// процент усекается, как в badge и советах
		title := fmt.Sprintf("%s %s · %d%%", badge(s, minimum), s.Code(), int(s.Attendance()))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(title, "subj:open:"+s.Code()),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func subjectKeyboard(code string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить", "subj:del:"+code),
		),
	)
}

func deleteConfirmKeyboard(code string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Да, удалить", "subj:delok:"+code),
		),
		navKeyboard(true).InlineKeyboard[0],
	)
}

package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Spok95/attendance-bot/internal/dialog"
	"github.com/Spok95/attendance-bot/internal/domain/subjects"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `Команды:
/start — начать работу
/subjects — мои предметы и советы
/add — добавить или обновить предмет
/minimum — задать минимальный порог посещаемости
/extended — переключить подробные советы
/export — выгрузить предметы в Excel
/import — загрузить предметы из Excel
/delete <код> — удалить предмет
/help — помощь`

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		st, err := b.students.UpsertFromTelegram(ctx, telegramProfile(msg.From),
			b.settings.DefaultMinimum, b.settings.ExtendedDefault)
		if err != nil {
			b.log.Error("upsert student failed", "tg_id", msg.From.ID, "err", err)
			b.reply(chatID, "Ошибка: не удалось сохранить профиль")
			return
		}
		_ = b.states.Reset(ctx, chatID)
		m := tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"Привет, %s! Я считаю посещаемость и подсказываю, сколько занятий можно пропустить.\n\n%s",
			st.DisplayName(), settingsText(st.MinimumAttendance, st.ExtendedStats)))
		m.ReplyMarkup = studentReplyKeyboard()
		b.send(m)

	case "help":
		b.reply(chatID, helpText)

	case "subjects":
		b.showSubjects(ctx, chatID, msg.From)

	case "add":
		b.startAddSubject(ctx, chatID)

	case "minimum":
		b.askMinimum(ctx, chatID, msg.From)

	case "extended":
		b.toggleExtended(ctx, chatID, msg.From)

	case "export":
		b.exportSubjects(ctx, chatID, msg.From)

	case "import":
		b.askImportFile(ctx, chatID)

	case "delete":
		code := strings.TrimSpace(msg.CommandArguments())
		if code == "" {
			b.reply(chatID, "Укажите код предмета: /delete M1")
			return
		}
		b.askDelete(ctx, chatID, code)

	default:
		b.reply(chatID, "Не знаю такую команду. Наберите /help")
	}
}

func (b *Bot) handleStateMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	// Нижняя панель
	switch text {
	case btnSubjects:
		b.showSubjects(ctx, chatID, msg.From)
		return
	case btnAdd:
		b.startAddSubject(ctx, chatID)
		return
	case btnMinimum:
		b.askMinimum(ctx, chatID, msg.From)
		return
	case btnExtended:
		b.toggleExtended(ctx, chatID, msg.From)
		return
	case btnExport:
		b.exportSubjects(ctx, chatID, msg.From)
		return
	case btnImport:
		b.askImportFile(ctx, chatID)
		return
	}

	// Диалоги (текстовые вводы)
	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("get dialog state failed", "chat_id", chatID, "err", err)
		return
	}

	switch st.State {
	case dialog.StateAddName:
		if text == "" {
			b.reply(chatID, "Название не может быть пустым. Введите название предмета.")
			return
		}
		st.Payload["name"] = text
		_ = b.states.Set(ctx, chatID, dialog.StateAddCode, st.Payload)
		b.reply(chatID, "Введите код предмета (например, CSE1001).")

	case dialog.StateAddCode:
		if text == "" || strings.ContainsAny(text, " \t") {
			b.reply(chatID, "Код — одно слово без пробелов. Введите код предмета.")
			return
		}
		if len(text) > subjects.MaxCodeLen {
			b.reply(chatID, fmt.Sprintf("Код не длиннее %d латинских символов. Введите код предмета.", subjects.MaxCodeLen))
			return
		}
		st.Payload["code"] = text
		_ = b.states.Set(ctx, chatID, dialog.StateAddLab, st.Payload)
		b.reply(chatID, "Лабораторные: посещено/проведено, например 4/5. Если лабораторных нет — 0/0.")

	case dialog.StateAddLab:
		present, total, err := subjects.ParseCounts(text)
		if err != nil {
			b.reply(chatID, "Не понял: "+err.Error()+". Введите посещено/проведено, например 4/5.")
			return
		}
		st.Payload["lab_present"] = present
		st.Payload["lab_total"] = total
		_ = b.states.Set(ctx, chatID, dialog.StateAddTheory, st.Payload)
		b.reply(chatID, "Теория: посещено/проведено, например 18/20.")

	case dialog.StateAddTheory:
		present, total, err := subjects.ParseCounts(text)
		if err != nil {
			b.reply(chatID, "Не понял: "+err.Error()+". Введите посещено/проведено, например 18/20.")
			return
		}
		st.Payload["theory_present"] = present
		st.Payload["theory_total"] = total
		b.finishAddSubject(ctx, chatID, msg.From, st.Payload)

	case dialog.StateSetMinimum:
		n, err := strconv.Atoi(strings.TrimSuffix(text, "%"))
		if err != nil || n < 1 || n > 99 {
			b.reply(chatID, "Введите целое число от 1 до 99.")
			return
		}
		b.saveMinimum(ctx, chatID, msg.From, n)

	case dialog.StateImportFile:
		b.reply(chatID, "Жду файл .xlsx. Для отмены нажмите «✖️ Отменить».")

	default:
		b.reply(chatID, "Выберите действие на панели снизу или наберите /help")
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := cb.Data
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID

	switch {
	case data == "nav:cancel":
		_ = b.states.Reset(ctx, chatID)
		b.editTextAndClear(chatID, msgID, "Операция отменена.")
		b.answerCallback(cb, "Отменено")

	case strings.HasPrefix(data, "subj:open:"):
		b.showSubjectCard(ctx, chatID, cb.From, strings.TrimPrefix(data, "subj:open:"))
		b.answerCallback(cb, "")

	case strings.HasPrefix(data, "subj:del:"):
		code := strings.TrimPrefix(data, "subj:del:")
		b.askDelete(ctx, chatID, code)
		b.answerCallback(cb, "")

	case strings.HasPrefix(data, "subj:delok:"):
		code := strings.TrimPrefix(data, "subj:delok:")
		b.deleteSubject(ctx, chatID, msgID, cb.From, code)
		b.answerCallback(cb, "Удалено")

	default:
		b.answerCallback(cb, "Неизвестное действие")
	}
}

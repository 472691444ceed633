package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Spok95/attendance-bot/internal/dialog"
	"github.com/Spok95/attendance-bot/internal/infra/metrics"
	"github.com/Spok95/attendance-bot/internal/report"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) exportSubjects(ctx context.Context, chatID int64, from *tgbotapi.User) {
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

	data, err := report.BuildSubjectsXLSX(list, st.MinimumAttendance, b.settings.TermClasses)
	if err != nil {
		b.log.Error("build xlsx failed", "student_id", st.ID, "err", err)
		b.reply(chatID, "Ошибка формирования файла")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("attendance_%s.xlsx", time.Now().Format("20060102_150405")),
		Bytes: data,
	})
	doc.Caption = "Предметы и советы. Поправьте счётчики и загрузите файл обратно через «" + btnImport + "»."
	b.send(doc)
}

func (b *Bot) askImportFile(ctx context.Context, chatID int64) {
	_ = b.states.Set(ctx, chatID, dialog.StateImportFile, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID,
		"Пришлите .xlsx с колонками code, name, lab_present, lab_total, theory_present, theory_total (как в выгрузке).")
	m.ReplyMarkup = navKeyboard(true)
	b.send(m)
}

// handleDocument принимает Excel только в состоянии ожидания файла.
func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	st, err := b.states.Get(ctx, chatID)
	if err != nil || st.State != dialog.StateImportFile {
		b.reply(chatID, "Чтобы загрузить предметы, сначала нажмите «"+btnImport+"».")
		return
	}
	if !strings.HasSuffix(strings.ToLower(msg.Document.FileName), ".xlsx") {
		b.reply(chatID, "Нужен файл .xlsx.")
		return
	}

	data, err := b.downloadTelegramFile(ctx, msg.Document.FileID)
	if err != nil {
		b.log.Error("download failed", "chat_id", chatID, "err", err)
		b.reply(chatID, "Не удалось скачать файл.")
		return
	}
	b.importSubjects(ctx, chatID, msg.From, data)
}

func (b *Bot) importSubjects(ctx context.Context, chatID int64, from *tgbotapi.User, data []byte) {
	forms, err := report.ParseSubjectsXLSX(data)
	if err != nil {
		b.reply(chatID, "Не удалось прочитать файл: "+err.Error())
		return
	}
	if len(forms) == 0 {
		b.reply(chatID, "Файл не содержит предметов.")
		return
	}

	// сначала проверяем всё, чтобы не сохранить файл наполовину
	for i, f := range forms {
		if err := f.Validate(); err != nil {
			b.reply(chatID, fmt.Sprintf("Ошибка в предмете №%d (%s): %s", i+1, f.Code, err))
			return
		}
	}

	st, err := b.student(ctx, from)
	if err != nil {
		b.log.Error("load student failed", "tg_id", from.ID, "err", err)
		b.reply(chatID, "Ошибка загрузки профиля")
		return
	}

	now := time.Now().UnixMilli()
	saved := 0
	for _, f := range forms {
		if err := b.subjects.Upsert(ctx, st.ID, f.Subject(now)); err != nil {
			b.log.Error("import upsert failed", "student_id", st.ID, "code", f.Code, "err", err)
			break
		}
		saved++
	}
	metrics.SubjectsImported.Add(float64(saved))
	_ = b.states.Reset(ctx, chatID)
	b.log.Info("subjects imported", "student_id", st.ID, "saved", saved, "total", len(forms))

	if saved < len(forms) {
		b.reply(chatID, fmt.Sprintf("Сохранено %d из %d предметов, остальные — ошибка записи.", saved, len(forms)))
		return
	}
	b.reply(chatID, fmt.Sprintf("Загружено предметов: %d. Откройте «%s», чтобы увидеть советы.", saved, btnSubjects))
}

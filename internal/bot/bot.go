package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Spok95/attendance-bot/internal/dialog"
	"github.com/Spok95/attendance-bot/internal/domain/students"
	"github.com/Spok95/attendance-bot/internal/domain/subjects"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Settings значения по умолчанию из конфига.
type Settings struct {
	DefaultMinimum  int
	ExtendedDefault bool
	TermClasses     int
	// Location для времени в карточке, nil значит UTC
	Location        *time.Location
}

type Bot struct {
	api      *tgbotapi.BotAPI
	log      *slog.Logger
	students *students.Repo
	subjects *subjects.Repo
	states   *dialog.Repo
	settings Settings
}

func New(api *tgbotapi.BotAPI, log *slog.Logger,
	studentsRepo *students.Repo, subjectsRepo *subjects.Repo,
	statesRepo *dialog.Repo, settings Settings) *Bot {

	if settings.DefaultMinimum <= 0 {
		settings.DefaultMinimum = students.DefaultMinimumAttendance
	}
	if settings.TermClasses <= 0 {
		settings.TermClasses = subjects.ApproxTermClasses
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &Bot{
		api: api, log: log, students: studentsRepo,
		subjects: subjectsRepo, states: statesRepo, settings: settings,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg.From == nil {
		return
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	if msg.Document != nil {
		b.handleDocument(ctx, msg)
		return
	}
	b.handleStateMessage(ctx, msg)
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery.Message == nil {
		return
	}
	b.handleCallback(ctx, upd.CallbackQuery)
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		b.log.Debug("answer callback failed", "err", err)
	}
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	b.send(edit)
}

// student возвращает профиль, создавая его при первом обращении.
func (b *Bot) student(ctx context.Context, from *tgbotapi.User) (*students.Student, error) {
	st, err := b.students.GetByTelegramID(ctx, from.ID)
	if err != nil || st != nil {
		return st, err
	}
	return b.students.UpsertFromTelegram(ctx, telegramProfile(from),
		b.settings.DefaultMinimum, b.settings.ExtendedDefault)
}

func telegramProfile(from *tgbotapi.User) students.Telegram {
	return students.Telegram{
		ID:        from.ID,
		Username:  from.UserName,
		FirstName: from.FirstName,
		LastName:  from.LastName,
	}
}

// downloadTelegramFile скачивает файл по FileID через Telegram API.
func (b *Bot) downloadTelegramFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram returned status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

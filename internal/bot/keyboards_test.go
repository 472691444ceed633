package bot

import (
	"strings"
	"testing"

	"github.com/Spok95/attendance-bot/internal/domain/subjects"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram отклоняет сообщение целиком, если callback_data длиннее 64 байт.
const maxCallbackData = 64

func TestKeyboards_CallbackDataFitsTelegramLimit(t *testing.T) {
	f := subjects.Form{Name: "Maths", Code: strings.Repeat("M", subjects.MaxCodeLen), TheoryPresent: 1, TheoryTotal: 2}
	if err := f.Validate(); err != nil {
		t.Fatalf("longest valid code rejected: %v", err)
	}
	s := f.Subject(0)

	keyboards := map[string]tgbotapi.InlineKeyboardMarkup{
		"subjects":       subjectsKeyboard([]subjects.Subject{s}, 75),
		"subject":        subjectKeyboard(s.Code()),
		"delete confirm": deleteConfirmKeyboard(s.Code()),
	}
	for name, kb := range keyboards {
		for _, row := range kb.InlineKeyboard {
			for _, btn := range row {
				if btn.CallbackData == nil {
					continue
				}
				if n := len(*btn.CallbackData); n > maxCallbackData {
					t.Errorf("%s: callback %q is %d bytes, limit %d", name, *btn.CallbackData, n, maxCallbackData)
				}
			}
		}
	}
}

func TestSubjectsKeyboard_TruncatesPercent(t *testing.T) {
	s := subjects.New("Maths", "M1", 0, 0, 0, 373, 500) // 74.6%

	kb := subjectsKeyboard([]subjects.Subject{s}, 75)
	if len(kb.InlineKeyboard) != 1 || len(kb.InlineKeyboard[0]) != 1 {
		t.Fatalf("want one button, got %+v", kb.InlineKeyboard)
	}
	btn := kb.InlineKeyboard[0][0]
	if want := "🔴 M1 · 74%"; btn.Text != want {
		t.Errorf("button text: got %q, want %q", btn.Text, want)
	}
	if btn.CallbackData == nil || *btn.CallbackData != "subj:open:M1" {
		t.Errorf("callback: got %v, want subj:open:M1", btn.CallbackData)
	}
}

// Package notify pushes comparison results to Telegram so the race-day
// operator sees discrepancies without watching the terminal.
package notify

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ocampos/turfcheck/internal/pkg/models"
)

// Min interval between two messages to the same chat, to stay clear of
// Telegram's ~30/min rate limit.
const sendInterval = 2 * time.Second

// Telegram message hard limit is 4096 chars; long discrepancy lists are cut.
const maxDiscrepancyLines = 30

// TelegramNotifier sends comparison verdicts to a chat. A nil notifier is
// valid and sends nothing.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	mu       sync.Mutex
	lastSend time.Time
}

// NewTelegramNotifier creates a notifier, verifying the token against the
// Bot API. Returns nil (disabled) when the bot cannot be reached.
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}
	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}

	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// SendComparison sends the verdict and the discrepancy list for one
// comparison run.
func (n *TelegramNotifier) SendComparison(venue string, result models.Comparison) error {
	if n == nil {
		return nil
	}

	var b strings.Builder
	if result.Matches {
		fmt.Fprintf(&b, "✅ %s: program and report match\n", venue)
	} else {
		fmt.Fprintf(&b, "⚠️ %s: %d discrepancies\n\n", venue, len(result.Discrepancies))
		for i, d := range result.Discrepancies {
			if i == maxDiscrepancyLines {
				fmt.Fprintf(&b, "… and %d more\n", len(result.Discrepancies)-maxDiscrepancyLines)
				break
			}
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}

	return n.send(b.String())
}

func (n *TelegramNotifier) send(text string) error {
	n.mu.Lock()
	if wait := sendInterval - time.Since(n.lastSend); wait > 0 {
		time.Sleep(wait)
	}
	n.lastSend = time.Now()
	n.mu.Unlock()

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

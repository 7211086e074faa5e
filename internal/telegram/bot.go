package telegram

import (
	"fmt"
	"strings"

	"go-jobquest/internal/models"
	"go-jobquest/internal/snapshot"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxJobMessages caps the per-job messages of one run; the rest are only
// counted in the summary.
const maxJobMessages = 20

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

var markdownEscaper = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
	")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
	"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
	"}", "\\}", ".", "\\.", "!", "\\!", "\\", "\\\\",
)

// Inside (...) of a MarkdownV2 link only ) and \ need escaping.
var linkEscaper = strings.NewReplacer(")", "\\)", "\\", "\\\\")

func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// FormatJob renders one new or changed posting as MarkdownV2.
func FormatJob(job models.JobListing, status snapshot.Status) string {
	icon := "🆕"
	if status == snapshot.StatusChanged {
		icon = "✏️"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*\n", icon, escapeMarkdown(job.Title))
	fmt.Fprintf(&b, "🏢 %s\n", escapeMarkdown(job.Company))

	loc := job.Location
	if loc == "" {
		loc = "N/A"
	}
	fmt.Fprintf(&b, "📍 %s\n", escapeMarkdown(loc))

	if job.Department != "" {
		fmt.Fprintf(&b, "🧩 %s\n", escapeMarkdown(job.Department))
	}
	if job.EmploymentType != "" {
		fmt.Fprintf(&b, "⏱ %s\n", escapeMarkdown(job.EmploymentType))
	}
	fmt.Fprintf(&b, "🔗 [View Job](%s)\n", linkEscaper.Replace(job.URL))
	return b.String()
}

// FormatSummary renders the closing message of a run.
func FormatSummary(runID string, result models.ScrapingResult, report *snapshot.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *%s* \\(%s\\)\n", escapeMarkdown(result.Company), escapeMarkdown(result.Platform))
	fmt.Fprintf(&b, "Fetched: %d\n", len(result.Jobs))
	if report != nil {
		fmt.Fprintf(&b, "New: %d\n", len(report.New))
		fmt.Fprintf(&b, "Changed: %d\n", len(report.Changed))
		fmt.Fprintf(&b, "Unchanged: %d\n", len(report.Unchanged))
		if extra := len(report.New) + len(report.Changed) - maxJobMessages; extra > 0 {
			fmt.Fprintf(&b, "%d more not sent\n", extra)
		}
	}
	if result.Error != "" {
		fmt.Fprintf(&b, "⚠️ %s\n", escapeMarkdown(result.Error))
	}
	fmt.Fprintf(&b, "🔖 Run %s\n", escapeMarkdown(runID))
	return b.String()
}

// NotifyRun sends every written job, then the summary.
func (b *Bot) NotifyRun(runID string, result models.ScrapingResult, report *snapshot.Report) error {
	if report != nil {
		sent := 0
		for _, d := range report.Decisions {
			if d.Status == snapshot.StatusUnchanged {
				continue
			}
			if sent == maxJobMessages {
				break
			}
			if err := b.sendJob(d.Job, d.Status); err != nil {
				return err
			}
			sent++
		}
	}
	return b.send(FormatSummary(runID, result, report), nil)
}

func (b *Bot) sendJob(job models.JobListing, status snapshot.Status) error {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔗 View Job", job.URL),
		),
	)
	return b.send(FormatJob(job, status), &keyboard)
}

func (b *Bot) send(text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = "MarkdownV2"
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"podpricer/internal/config"
	"podpricer/internal/pricing"
	"podpricer/internal/storage"
)

// Notifier pushes quote events to the back-office Telegram channel and the
// configured admin accounts. A Notifier without a bot is valid and drops
// everything, so callers never branch on whether notifications are on.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	cfg    config.AdminConfig
	logger *zap.Logger
}

// New builds a Notifier. An empty token disables notifications.
func New(cfg config.AdminConfig, logger *zap.Logger) (*Notifier, error) {
	if cfg.TelegramToken == "" {
		logger.Warn("Telegram notifications disabled - no token configured")
		return &Notifier{cfg: cfg, logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	logger.Info("Telegram notifier ready", zap.String("bot", bot.Self.UserName))
	return &Notifier{bot: bot, cfg: cfg, logger: logger}, nil
}

// QuoteSaved announces a persisted quote to the channel and each admin.
func (n *Notifier) QuoteSaved(quote storage.Quote, summary pricing.Summary) {
	if n.bot == nil {
		return
	}

	text := formatQuoteNotification(quote, summary)

	if n.cfg.ChannelID != 0 {
		n.send(n.cfg.ChannelID, text, quote.ID)
	}
	for _, adminID := range n.cfg.IDs {
		if adminID != 0 {
			n.send(adminID, text, quote.ID)
		}
	}
}

func (n *Notifier) send(chatID int64, text string, quoteID int64) {
	msg := tgbotapi.NewMessage(chatID, text)

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("Failed to send quote notification",
			zap.Int64("chat_id", chatID),
			zap.Int64("quote_id", quoteID),
			zap.Error(err))
	}
}

func formatQuoteNotification(quote storage.Quote, summary pricing.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🧾 New quote #%d\n", quote.ID)
	fmt.Fprintf(&b, "Design: %s\n", quote.DesignID)
	if quote.ProductID != "" {
		fmt.Fprintf(&b, "Product: %s\n", quote.ProductID)
	}
	fmt.Fprintf(&b, "Quantity: %d\n", quote.Quantity)

	for _, side := range summary.Sides {
		if !side.HasObjects {
			fmt.Fprintf(&b, "- %s: no design\n", side.Name)
			continue
		}
		fmt.Fprintf(&b, "- %s: %d %s (%d objects)\n",
			side.Name, side.AdditionalPrice, summary.Currency, len(side.Objects))
	}

	fmt.Fprintf(&b, "Total: %d %s", summary.Total, summary.Currency)
	return b.String()
}

package tgbot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/fourthandlong/playoffpool/internal/config"
	"github.com/fourthandlong/playoffpool/internal/database"
	"github.com/fourthandlong/playoffpool/internal/settle"
)

const maxBoardEntries = 10

// Bot announces finished settlements to the league chat and answers
// leaderboard queries. It only reads settled rows; a disabled bot is nil and
// all methods are nil-safe no-ops.
type Bot struct {
	bot     *tgbotapi.BotAPI
	log     *zap.Logger
	db      *database.DataBase
	settler *settle.Settler
	chatID  int64
}

func NewBot(conf *config.Config, log *zap.Logger, db *database.DataBase, settler *settle.Settler) (*Bot, error) {
	if conf.Telegram.Token == "" {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(conf.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return &Bot{bot, log, db, settler, conf.Telegram.ChatID}, nil
}

func (b *Bot) Run(ctx context.Context) {
	b.log.Info("Authorized on account", zap.String("username", b.bot.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case update := <-updates:
			if err := b.handleUpdate(update); err != nil {
				b.log.Error("Failed to handle update", zap.Error(err), zap.Int("update_id", update.UpdateID))
			}
		case <-ctx.Done():
			return
		}
	}
}

// AnnounceSettlement posts a short summary of a finished pass to the league
// chat.
func (b *Bot) AnnounceSettlement(summary *settle.RunSummary) error {
	if b == nil {
		return nil
	}

	name := fmt.Sprintf("Round %d", summary.RoundNumber)
	if round, err := b.db.FindRoundByID(summary.RoundID); err == nil && round.Name != "" {
		name = round.Name
	}

	text := fmt.Sprintf("%s settled: %d games scored, %d rosters rescored",
		name, summary.GamesSettled, summary.RostersScored)
	msg := tgbotapi.NewMessage(b.chatID, text)

	_, err := b.bot.Send(msg)
	return err
}

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil || !update.Message.IsCommand() {
		return nil
	}
	b.log.Info("Got command",
		zap.String("user", update.Message.From.UserName),
		zap.String("text", update.Message.Text),
	)

	var text string
	var err error
	switch update.Message.Command() {
	case "leaderboard":
		text, err = b.fantasyBoard()
	case "money":
		text, err = b.moneyBoard()
	case "link":
		text, err = b.linkAccount(update.Message)
	case "me":
		text, err = b.whoAmI(update.Message)
	default:
		return nil
	}
	if err != nil {
		b.log.Error("Failed to build board", zap.Error(err))
		text = "Failed to build the leaderboard, try again later"
	}

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, text)
	msg.ReplyToMessageID = update.Message.MessageID

	_, err = b.bot.Send(msg)
	return err
}

func (b *Bot) fantasyBoard() (string, error) {
	standings, err := b.settler.CalcFantasyStandings()
	if err != nil {
		return "", err
	}
	if len(standings.Users) == 0 {
		return "Nothing settled yet", nil
	}

	var sb strings.Builder
	sb.WriteString("Fantasy leaderboard:\n")
	for i, user := range standings.Users {
		if i == maxBoardEntries {
			break
		}
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, user.Name, user.Total.StringFixed(2))
	}
	return sb.String(), nil
}

// linkAccount ties the sender's telegram account to a league user, so later
// commands can answer without arguments.
func (b *Bot) linkAccount(message *tgbotapi.Message) (string, error) {
	username := strings.TrimSpace(message.CommandArguments())
	if username == "" {
		return "Usage: /link <username>", nil
	}

	user, err := b.db.FindUserByUsername(username)
	if err != nil {
		return fmt.Sprintf("Unknown user %q", username), nil
	}

	id := message.From.ID
	user.TelegramID = &id
	if err := b.db.SetUserTelegramID(user); err != nil {
		return "", err
	}
	return fmt.Sprintf("Linked %s", user.Name()), nil
}

func (b *Bot) whoAmI(message *tgbotapi.Message) (string, error) {
	user, err := b.db.FindUserByTelegramID(message.From.ID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "Not linked yet, use /link <username>", nil
	}
	return fmt.Sprintf("You are %s (%s)", user.Name(), user.Username), nil
}

func (b *Bot) moneyBoard() (string, error) {
	standings, err := b.settler.CalcPredictorStandings()
	if err != nil {
		return "", err
	}
	if len(standings.Users) == 0 {
		return "Nothing settled yet", nil
	}

	var sb strings.Builder
	sb.WriteString("Predictor standings:\n")
	for i, user := range standings.Users {
		if i == maxBoardEntries {
			break
		}
		fmt.Fprintf(&sb, "%d. %s: %s pts ($%+.2f)\n",
			i+1, user.Name, user.Total.StringFixed(2), user.NetDollars.InexactFloat64())
	}
	return sb.String(), nil
}

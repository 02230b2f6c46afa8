package bot

import (
	"context"
	"log"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/game"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/model"
)

// PostDailySummary builds the daily report and delivers it to the configured
// summary channel. Without a configured channel it is a silent no-op.
func (b *Bot) PostDailySummary(ctx context.Context) {
	var channelID string
	b.store.Read(func(st *model.PondState) {
		if st.SummaryChannelID != nil {
			channelID = *st.SummaryChannelID
		}
	})
	if channelID == "" {
		return
	}
	chID, err := snowflake.Parse(channelID)
	if err != nil {
		log.Printf("[ERROR] invalid summary channel id %q: %v", channelID, err)
		return
	}

	today := game.DateString(time.Now().UnixMilli())
	report := b.reporter.Build(ctx, today)

	builder := discord.NewMessageCreateBuilder().
		SetEmbeds(summaryEmbed(report))
	if report.PingEnabled && len(report.Overdue) > 0 {
		builder.SetContent(reminderContent(report.Overdue))
	}

	if _, err := b.client.Rest().CreateMessage(chID, builder.Build()); err != nil {
		log.Printf("[ERROR] send daily summary: %v", err)
	}
}

package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"

	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/game"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/summary"
)

const (
	catchEmbedColor   = 0x0099FF
	summaryEmbedColor = 0xFFD700

	// Content stays well under Discord's 2000 character message limit.
	maxMentionBlock = 1850
	mentionCutoff   = 1800
)

// buttonMessage is the persistent "click to fish" message.
func buttonMessage() discord.MessageCreate {
	return discord.NewMessageCreateBuilder().
		SetContent("🎣 Welcome to Stardust Pond — click to fish!").
		AddActionRow(discord.NewPrimaryButton("🎣 Fish!", fishButtonID)).
		Build()
}

// catchEmbed celebrates one successful catch.
func catchEmbed(username, avatarURL string, res game.CatchResult) discord.Embed {
	return discord.NewEmbedBuilder().
		SetColor(catchEmbedColor).
		SetTitle("🎣 Catch of the Day!").
		SetDescription(fmt.Sprintf("**%s** cast their line and caught a fish! 🐟", username)).
		SetThumbnail(avatarURL).
		AddField("🔥 Streak", fmt.Sprintf("%d Days", res.Streak), true).
		AddField("✨ Total Catches", fmt.Sprintf("%d", res.TotalCatches), true).
		AddField("🌍 Total Catches Today", fmt.Sprintf("%d", res.DailyCount), true).
		SetTimestamp(time.Now()).
		SetFooter("Stardust Pond", "").
		Build()
}

// summaryEmbed renders the daily report.
func summaryEmbed(report *summary.Report) discord.Embed {
	builder := discord.NewEmbedBuilder().
		SetTitle("🐠 Daily Guild Aquarium Contributions").
		SetDescription("Here is how the pond is doing today!").
		SetColor(summaryEmbedColor).
		AddField("🎣 Total Catches Today", fmt.Sprintf("**%d**", report.DailyCount), true).
		AddField("😴 Members Missed", fmt.Sprintf("**%d**", len(report.Overdue)), true).
		SetFooter("Stardust Pond Daily Summary", "").
		SetTimestamp(time.Now())

	if len(report.BestAnglers) > 0 {
		var anglers strings.Builder
		for _, a := range report.BestAnglers {
			anglers.WriteString(fmt.Sprintf("🏆 **%s**: %d 🐟 (%d day streak)\n",
				a.Username, a.TotalCatches, a.Streak))
		}
		builder.AddField(
			fmt.Sprintf("🔥 Best Anglers (%d+ Day Streak)", report.BestAnglerStreak),
			anglers.String(), false)
	}

	builder.AddField("Message",
		"We miss you ❤️\nPlease remember to fish daily 🙏 Many lovely cats, cosmic dolphins and diamond rewards await us all 💎✨",
		false)

	return builder.Build()
}

// reminderContent builds the ping block for overdue members.
func reminderContent(overdue []string) string {
	mentions := make([]string, len(overdue))
	for i, id := range overdue {
		mentions[i] = fmt.Sprintf("<@%s>", id)
	}
	return "**Wake up! You haven't fished in a while!** 🎣\n" +
		truncateMentions(strings.Join(mentions, " "), len(overdue))
}

// truncateMentions keeps a mention block inside one Discord message, cutting
// at a mention boundary and noting how many were dropped.
func truncateMentions(block string, total int) string {
	if len(block) <= maxMentionBlock {
		return block
	}
	truncated := block[:mentionCutoff]
	if i := strings.LastIndexAny(truncated, " \n"); i > 0 {
		truncated = truncated[:i]
	}
	shown := strings.Count(truncated, "<@")
	return fmt.Sprintf("%s ...and %d others", truncated, total-shown)
}

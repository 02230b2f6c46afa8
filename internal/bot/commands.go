package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	djson "github.com/disgoorg/json"

	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/game"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/model"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/recorder"
)

// commands returns the full slash command set. Admin commands default to
// administrator-only; guild admins can loosen that per command if they want.
func commands() []discord.ApplicationCommandCreate {
	admin := djson.NewNullablePtr(discord.PermissionAdministrator)

	return []discord.ApplicationCommandCreate{
		discord.SlashCommandCreate{
			Name:        "fish",
			Description: "Cast your line and catch a fish!",
		},
		discord.SlashCommandCreate{
			Name:        "summary",
			Description: "Post the daily summary to the configured channel",
		},
		discord.SlashCommandCreate{
			Name:                     "fishsetup",
			Description:              "Set up the fishing pond (creates the fish button)",
			DefaultMemberPermissions: admin,
		},
		discord.SlashCommandCreate{
			Name:                     "fishsummary",
			Description:              "List tracked members who have not fished today",
			DefaultMemberPermissions: admin,
		},
		discord.SlashCommandCreate{
			Name:                     "setrole",
			Description:              "Set the role to track for fishing statistics",
			DefaultMemberPermissions: admin,
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionRole{
					Name:        "role",
					Description: "The role to track",
					Required:    true,
				},
			},
		},
		discord.SlashCommandCreate{
			Name:                     "setsummarychannel",
			Description:              "Post daily summaries in this channel",
			DefaultMemberPermissions: admin,
		},
		discord.SlashCommandCreate{
			Name:                     "setbestanglerstreak",
			Description:              "Set the minimum streak for the Best Anglers list",
			DefaultMemberPermissions: admin,
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionInt{
					Name:        "streak",
					Description: "The minimum streak required (e.g., 5)",
					Required:    true,
				},
			},
		},
		discord.SlashCommandCreate{
			Name:                     "setreminderthreshold",
			Description:              "Days of inactivity before a member gets pinged",
			DefaultMemberPermissions: admin,
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionInt{
					Name:        "days",
					Description: "Number of days (e.g., 1 for daily, 3 for every 3 days)",
					Required:    true,
				},
			},
		},
		discord.SlashCommandCreate{
			Name:                     "togglereminder",
			Description:              "Enable or disable reminder pings in the daily summary",
			DefaultMemberPermissions: admin,
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionBool{
					Name:        "enabled",
					Description: "true to ping members, false to stay quiet",
					Required:    true,
				},
			},
		},
	}
}

// displayName prefers the guild nickname over the account username.
func displayName(member *discord.ResolvedMember, user discord.User) string {
	if member != nil && member.Nick != nil && *member.Nick != "" {
		return *member.Nick
	}
	return user.Username
}

func (b *Bot) replyEphemeral(e *events.ApplicationCommandInteractionCreate, content string) {
	err := e.CreateMessage(discord.NewMessageCreateBuilder().
		SetContent(content).
		SetEphemeral(true).
		Build())
	if err != nil {
		log.Printf("[ERROR] send reply: %v", err)
	}
}

// recordCatch runs the shared catch path. A stale day window triggers the
// reset lazily and then retries once, so the first fisher of a new day does
// not have to wait for the scheduled job.
func (b *Bot) recordCatch(userID, username string) (game.CatchResult, error) {
	res, err := b.engine.RecordCatch(userID, username, time.Now())
	if errors.Is(err, game.ErrResetPending) {
		b.coordinator.Reset(time.Now())
		res, err = b.engine.RecordCatch(userID, username, time.Now())
	}
	if err != nil {
		return res, err
	}

	if recErr := b.recorder.RecordCatch(&recorder.CatchEvent{
		UserID:       userID,
		Username:     username,
		Streak:       res.Streak,
		TotalCatches: res.TotalCatches,
		DailyCount:   res.DailyCount,
	}); recErr != nil {
		log.Printf("[ERROR] record catch event: %v", recErr)
	}
	return res, nil
}

func (b *Bot) handleFish(e *events.ApplicationCommandInteractionCreate) {
	user := e.User()
	username := displayName(e.Member(), user)

	res, err := b.recordCatch(user.ID.String(), username)
	switch {
	case errors.Is(err, game.ErrAlreadyFished):
		b.replyEphemeral(e, "❌ You've already fished today! Come back tomorrow.")
		return
	case errors.Is(err, game.ErrResetPending):
		b.replyEphemeral(e, "🌅 The pond is rolling over to a new day, please try again in a moment.")
		return
	case err != nil:
		log.Printf("[ERROR] record catch for %s: %v", user.ID, err)
		b.replyEphemeral(e, "❌ Something went wrong, please try again.")
		return
	}

	err = e.CreateMessage(discord.NewMessageCreateBuilder().
		SetEmbeds(catchEmbed(username, user.EffectiveAvatarURL(), res)).
		Build())
	if err != nil {
		log.Printf("[ERROR] send catch embed: %v", err)
	}
}

func (b *Bot) handleSummary(e *events.ApplicationCommandInteractionCreate) {
	b.replyEphemeral(e, "✅ Summary posted (check the configured channel if set)")
	go b.PostDailySummary(context.Background())
}

func (b *Bot) handleFishSetup(e *events.ApplicationCommandInteractionCreate) {
	channelID := e.Channel().ID()

	msg, err := b.client.Rest().CreateMessage(channelID, buttonMessage())
	if err != nil {
		log.Printf("[ERROR] post fish button: %v", err)
		b.replyEphemeral(e, "❌ Could not post the fish button here.")
		return
	}

	msgID, chID := msg.ID.String(), channelID.String()
	b.store.Mutate(func(st *model.PondState) {
		st.ButtonMessageID = &msgID
		st.ButtonChannelID = &chID
		if g := e.GuildID(); g != nil {
			gid := g.String()
			st.GuildID = &gid
		}
	})
	b.store.Persist()

	b.replyEphemeral(e, "🎣 The pond is open — members can now click to fish!")
}

func (b *Bot) handleFishSummary(e *events.ApplicationCommandInteractionCreate) {
	guildID := e.GuildID()
	if guildID == nil {
		b.replyEphemeral(e, "❌ This command can only be used in a server.")
		return
	}

	var roleID string
	var fished map[string]struct{}
	b.store.Read(func(st *model.PondState) {
		if st.TrackedRoleID != nil {
			roleID = *st.TrackedRoleID
		}
		fished = make(map[string]struct{}, len(st.Users))
		for id := range st.Users {
			fished[id] = struct{}{}
		}
	})
	if roleID == "" {
		b.replyEphemeral(e, "❌ No role is being tracked. Use `/setrole` to set one.")
		return
	}

	// The paginated member fetch can outlive the interaction deadline, so
	// defer the response and fill it in afterwards.
	if err := e.DeferCreateMessage(true); err != nil {
		log.Printf("[ERROR] defer fishsummary response: %v", err)
		return
	}

	roster := &guildRoster{client: b.client}
	members := roster.RoleMemberIDs(context.Background(), guildID.String(), roleID)

	var nonFishers []string
	for _, id := range members {
		if _, ok := fished[id]; !ok {
			nonFishers = append(nonFishers, id)
		}
	}

	content := fmt.Sprintf("🎉 All members of the <@&%s> role have fished today!", roleID)
	if len(nonFishers) > 0 {
		mentions := make([]string, len(nonFishers))
		for i, id := range nonFishers {
			mentions[i] = fmt.Sprintf("<@%s>", id)
		}
		content = fmt.Sprintf("**Members of the <@&%s> role who have not fished today:**\n%s",
			roleID, truncateMentions(strings.Join(mentions, "\n"), len(nonFishers)))
	}

	_, err := b.client.Rest().UpdateInteractionResponse(e.ApplicationID(), e.Token(),
		discord.NewMessageUpdateBuilder().SetContent(content).Build())
	if err != nil {
		log.Printf("[ERROR] send fishsummary response: %v", err)
	}
}

func (b *Bot) handleSetRole(e *events.ApplicationCommandInteractionCreate) {
	roleID := e.SlashCommandInteractionData().Snowflake("role").String()

	b.store.Mutate(func(st *model.PondState) {
		st.TrackedRoleID = &roleID
		if g := e.GuildID(); g != nil {
			gid := g.String()
			st.GuildID = &gid
		}
	})
	b.store.Persist()

	b.replyEphemeral(e, fmt.Sprintf("✅ Now tracking the <@&%s> role for fishing statistics!", roleID))
}

func (b *Bot) handleSetSummaryChannel(e *events.ApplicationCommandInteractionCreate) {
	channelID := e.Channel().ID().String()

	b.store.Mutate(func(st *model.PondState) {
		st.SummaryChannelID = &channelID
		if g := e.GuildID(); g != nil {
			gid := g.String()
			st.GuildID = &gid
		}
	})
	b.store.Persist()

	b.replyEphemeral(e, "✅ Daily summaries will be posted in this channel!")
}

func (b *Bot) handleSetBestAnglerStreak(e *events.ApplicationCommandInteractionCreate) {
	streak := e.SlashCommandInteractionData().Int("streak")
	if streak < 1 {
		b.replyEphemeral(e, "❌ The streak must be at least 1.")
		return
	}

	b.store.Mutate(func(st *model.PondState) { st.BestAnglerStreak = streak })
	b.store.Persist()

	b.replyEphemeral(e, fmt.Sprintf("✅ Best Angler minimum streak set to **%d** days.", streak))
}

func (b *Bot) handleSetReminderThreshold(e *events.ApplicationCommandInteractionCreate) {
	days := e.SlashCommandInteractionData().Int("days")
	if days < 1 {
		b.replyEphemeral(e, "❌ The threshold must be at least 1 day.")
		return
	}

	b.store.Mutate(func(st *model.PondState) { st.ReminderThreshold = days })
	b.store.Persist()

	b.replyEphemeral(e, fmt.Sprintf(
		"✅ Inactivity threshold set to **%d days**. Members will be pinged if they haven't fished for %d days or more.",
		days, days))
}

func (b *Bot) handleToggleReminder(e *events.ApplicationCommandInteractionCreate) {
	enabled := e.SlashCommandInteractionData().Bool("enabled")

	b.store.Mutate(func(st *model.PondState) { st.PingReminderEnabled = enabled })
	b.store.Persist()

	verb := "DISABLED"
	if enabled {
		verb = "ENABLED"
	}
	b.replyEphemeral(e, fmt.Sprintf("✅ Daily reminder pings have been %s.", verb))
}

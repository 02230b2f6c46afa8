package bot

import (
	"errors"
	"log"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"

	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/game"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/model"
)

// handleFishButton is the button twin of /fish. On success it also re-posts
// the fish button as the newest message in the channel and removes the old
// one, so the button never scrolls out of reach.
func (b *Bot) handleFishButton(e *events.ComponentInteractionCreate) {
	user := e.User()
	username := displayName(e.Member(), user)

	res, err := b.recordCatch(user.ID.String(), username)
	switch {
	case errors.Is(err, game.ErrAlreadyFished):
		sendErr := e.CreateMessage(discord.NewMessageCreateBuilder().
			SetContent("❌ You've already fished today! Come back tomorrow.").
			SetEphemeral(true).
			Build())
		if sendErr != nil {
			log.Printf("[ERROR] send duplicate-catch reply: %v", sendErr)
		}
		return
	case errors.Is(err, game.ErrResetPending):
		sendErr := e.CreateMessage(discord.NewMessageCreateBuilder().
			SetContent("🌅 The pond is rolling over to a new day, please try again in a moment.").
			SetEphemeral(true).
			Build())
		if sendErr != nil {
			log.Printf("[ERROR] send reset-pending reply: %v", sendErr)
		}
		return
	case err != nil:
		log.Printf("[ERROR] record button catch for %s: %v", user.ID, err)
		return
	}

	// Remember the old button location before it gets replaced.
	var oldMsgID, oldChannelID string
	b.store.Read(func(st *model.PondState) {
		if st.ButtonMessageID != nil {
			oldMsgID = *st.ButtonMessageID
		}
		if st.ButtonChannelID != nil {
			oldChannelID = *st.ButtonChannelID
		}
	})

	err = e.CreateMessage(discord.NewMessageCreateBuilder().
		SetEmbeds(catchEmbed(username, user.EffectiveAvatarURL(), res)).
		Build())
	if err != nil {
		log.Printf("[ERROR] send catch embed: %v", err)
	}

	channelID := e.Channel().ID()
	newMsg, err := b.client.Rest().CreateMessage(channelID, buttonMessage())
	if err != nil {
		log.Printf("[ERROR] re-post fish button: %v", err)
		return
	}

	msgID, chID := newMsg.ID.String(), channelID.String()
	b.store.Mutate(func(st *model.PondState) {
		st.ButtonMessageID = &msgID
		st.ButtonChannelID = &chID
	})
	b.store.Persist()

	b.deleteOldButton(oldMsgID, oldChannelID)
}

// deleteOldButton removes the superseded button message; failures don't
// matter, the message may already be gone.
func (b *Bot) deleteOldButton(msgID, channelID string) {
	if msgID == "" || channelID == "" {
		return
	}
	mID, err := snowflake.Parse(msgID)
	if err != nil {
		return
	}
	cID, err := snowflake.Parse(channelID)
	if err != nil {
		return
	}
	if err := b.client.Rest().DeleteMessage(cID, mID); err == nil {
		log.Println("[INFO] old fish button message deleted")
	}
}

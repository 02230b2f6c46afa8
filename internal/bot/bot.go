// Package bot is the Discord-facing layer: slash commands, the persistent
// fish button, and summary delivery. All game rules live in internal/game;
// this package only translates interactions into core calls and renders the
// results.
package bot

import (
	"context"
	"log"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"

	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/game"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/recorder"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/store"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/summary"
)

const fishButtonID = "fish_button"

// Bot owns the Discord client and wires interactions to the game core.
type Bot struct {
	client      bot.Client
	store       *store.Store
	engine      *game.Engine
	coordinator *game.ResetCoordinator
	reporter    *summary.Reporter
	recorder    recorder.Recorder
}

// New builds the Discord client with the gateway intents and event listeners
// the bot needs. The gateway is not opened until Start.
func New(token string, st *store.Store, eng *game.Engine, coord *game.ResetCoordinator, rec recorder.Recorder) (*Bot, error) {
	b := &Bot{
		store:       st,
		engine:      eng,
		coordinator: coord,
		recorder:    rec,
	}

	client, err := disgo.New(token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
				gateway.IntentGuildMessages,
				gateway.IntentGuildMembers,
			),
		),
		bot.WithEventListeners(&events.ListenerAdapter{
			OnApplicationCommandInteraction: b.handleCommand,
			OnComponentInteraction:          b.handleComponent,
		}),
	)
	if err != nil {
		return nil, err
	}

	b.client = client
	b.reporter = summary.NewReporter(st, &guildRoster{client: client})
	return b, nil
}

// Start registers the slash commands globally and opens the gateway connection.
func (b *Bot) Start(ctx context.Context) error {
	log.Println("[INFO] registering slash commands")
	if _, err := b.client.Rest().SetGlobalCommands(b.client.ApplicationID(), commands()); err != nil {
		return err
	}

	log.Println("[INFO] opening gateway")
	return b.client.OpenGateway(ctx)
}

// Close shuts the gateway connection down.
func (b *Bot) Close(ctx context.Context) {
	b.client.Close(ctx)
}

func (b *Bot) handleCommand(e *events.ApplicationCommandInteractionCreate) {
	go func() {
		name := e.SlashCommandInteractionData().CommandName()
		switch name {
		case "fish":
			b.handleFish(e)
		case "summary":
			b.handleSummary(e)
		case "fishsetup":
			b.handleFishSetup(e)
		case "fishsummary":
			b.handleFishSummary(e)
		case "setrole":
			b.handleSetRole(e)
		case "setsummarychannel":
			b.handleSetSummaryChannel(e)
		case "setbestanglerstreak":
			b.handleSetBestAnglerStreak(e)
		case "setreminderthreshold":
			b.handleSetReminderThreshold(e)
		case "togglereminder":
			b.handleToggleReminder(e)
		default:
			log.Printf("[WARN] unknown command: %s", name)
		}
	}()
}

func (b *Bot) handleComponent(e *events.ComponentInteractionCreate) {
	if e.Data.CustomID() != fishButtonID {
		return
	}
	go b.handleFishButton(e)
}

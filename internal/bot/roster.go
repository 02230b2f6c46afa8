package bot

import (
	"context"
	"log"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/snowflake/v2"
)

const memberPageSize = 1000

// guildRoster enumerates role members through the Discord REST API. It
// implements summary.MemberRoster.
type guildRoster struct {
	client bot.Client
}

// RoleMemberIDs pages through the guild member list and keeps the IDs holding
// the tracked role. An empty page is the only success-termination signal; a
// fetch error stops the loop early and whatever was gathered so far is
// returned, since a partial reminder list beats no summary at all.
func (r *guildRoster) RoleMemberIDs(_ context.Context, guildID, roleID string) []string {
	gID, err := snowflake.Parse(guildID)
	if err != nil {
		log.Printf("[ERROR] invalid guild id %q: %v", guildID, err)
		return nil
	}
	rID, err := snowflake.Parse(roleID)
	if err != nil {
		log.Printf("[ERROR] invalid role id %q: %v", roleID, err)
		return nil
	}

	var ids []string
	var after snowflake.ID
	for {
		page, err := r.client.Rest().GetMembers(gID, memberPageSize, after)
		if err != nil {
			log.Printf("[ERROR] fetch members for guild %s: %v", guildID, err)
			break
		}
		if len(page) == 0 {
			break
		}
		after = page[len(page)-1].User.ID

		for _, member := range page {
			for _, role := range member.RoleIDs {
				if role == rID {
					ids = append(ids, member.User.ID.String())
					break
				}
			}
		}
	}
	return ids
}

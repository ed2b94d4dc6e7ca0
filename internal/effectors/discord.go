// Package effectors delivers the bot's replies to its output channels.
package effectors

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// DiscordEffector sends replies to Discord.
type DiscordEffector struct {
	session *discordgo.Session
}

// NewDiscordEffector creates a Discord effector sharing the sense's
// session.
func NewDiscordEffector(session *discordgo.Session) *DiscordEffector {
	return &DiscordEffector{session: session}
}

// SendReplies posts each reply text to the channel in order.
func (e *DiscordEffector) SendReplies(channelID string, texts []string) error {
	for _, text := range texts {
		if text == "" {
			continue
		}
		if _, err := e.session.ChannelMessageSend(channelID, text); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}
	return nil
}

// AddReaction attaches an emoji to a student's message.
func (e *DiscordEffector) AddReaction(channelID, messageID, emoji string) error {
	if err := e.session.MessageReactionAdd(channelID, messageID, emoji); err != nil {
		log.Printf("[discord-effector] reaction failed: %v", err)
		return err
	}
	return nil
}

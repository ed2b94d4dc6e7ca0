// Package senses connects the bot to its input channels.
package senses

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// Incoming is one student message received from Discord.
type Incoming struct {
	ChannelID string
	AuthorID  string
	Author    string
	Content   string
}

// DiscordSense listens to Discord and hands student messages to the bot.
type DiscordSense struct {
	session   *discordgo.Session
	channelID string
	botID     string
	onMessage func(Incoming)
}

// DiscordConfig holds Discord connection settings.
type DiscordConfig struct {
	Token     string
	ChannelID string
}

// NewDiscordSense creates a new Discord sense.
func NewDiscordSense(cfg DiscordConfig, onMessage func(Incoming)) (*DiscordSense, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	sense := &DiscordSense{
		session:   session,
		channelID: cfg.ChannelID,
		onMessage: onMessage,
	}

	session.AddHandler(sense.handleMessage)

	// We only need message content
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent

	return sense, nil
}

// Start connects to Discord and begins listening.
func (d *DiscordSense) Start() error {
	if err := d.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	// Get bot's user ID for self-filtering
	d.botID = d.session.State.User.ID
	log.Printf("[discord-sense] Connected as %s", d.session.State.User.Username)

	return nil
}

// Stop disconnects from Discord.
func (d *DiscordSense) Stop() error {
	return d.session.Close()
}

// Session returns the underlying Discord session for sharing with the
// effector.
func (d *DiscordSense) Session() *discordgo.Session {
	return d.session
}

func (d *DiscordSense) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore messages from self and other bots
	if m.Author.ID == d.botID || m.Author.Bot {
		return
	}

	// Only process messages from the configured channel (if set)
	if d.channelID != "" && m.ChannelID != d.channelID {
		return
	}

	log.Printf("[discord-sense] Message from %s: %s", m.Author.Username, truncate(m.Content, 50))

	if d.onMessage != nil {
		d.onMessage(Incoming{
			ChannelID: m.ChannelID,
			AuthorID:  m.Author.ID,
			Author:    m.Author.Username,
			Content:   m.Content,
		})
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

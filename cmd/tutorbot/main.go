package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"tutorbot/internal/analysis"
	"tutorbot/internal/commands"
	"tutorbot/internal/effectors"
	"tutorbot/internal/kb"
	"tutorbot/internal/senses"
	"tutorbot/internal/session"
	"tutorbot/internal/tokens"
)

func main() {
	log.Println("tutorbot - conversational tutoring agent")
	log.Println("========================================")

	// Load .env file (optional - won't error if missing)
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, using environment variables")
	} else {
		log.Println("[config] Loaded .env file")
	}

	discordToken := os.Getenv("DISCORD_TOKEN")
	discordChannel := os.Getenv("DISCORD_CHANNEL_ID")
	kbPath := os.Getenv("KB_PATH")
	catalogPath := os.Getenv("CATALOG_PATH")

	store, err := openStore(kbPath)
	if err != nil {
		log.Fatalf("Failed to open knowledge base: %v", err)
	}

	catalog := commands.DefaultCatalog()
	if catalogPath != "" {
		catalog, err = commands.LoadCatalog(catalogPath)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
	}

	tagger := tokens.NewProseTagger()

	if discordToken == "" {
		log.Println("[main] No DISCORD_TOKEN set, running local REPL")
		runREPL(store, tagger, catalog)
		return
	}

	// One session per channel, serialized so a student's messages are
	// analyzed in order.
	mgr := &sessionManager{
		sessions: map[string]*analysis.Session{},
		store:    store,
		tagger:   tagger,
		catalog:  catalog,
	}

	var effector *effectors.DiscordEffector
	discordSense, err := senses.NewDiscordSense(senses.DiscordConfig{
		Token:     discordToken,
		ChannelID: discordChannel,
	}, func(in senses.Incoming) {
		replies := mgr.handle(in)
		if err := effector.SendReplies(in.ChannelID, replies); err != nil {
			log.Printf("[main] Failed to send replies: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to create Discord sense: %v", err)
	}

	effector = effectors.NewDiscordEffector(discordSense.Session())
	if err := discordSense.Start(); err != nil {
		log.Fatalf("Failed to start Discord sense: %v", err)
	}

	log.Println("[main] Connected. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("[main] Shutting down...")
	discordSense.Stop()
	log.Println("[main] Goodbye!")
}

// openStore opens the SQLite knowledge base, or falls back to the
// built-in demo course when no path is configured.
func openStore(path string) (kb.Store, error) {
	if path == "" {
		log.Println("[main] No KB_PATH set, using built-in demo course")
		mem := kb.NewMemStore()
		kb.SeedDemo(mem)
		return mem, nil
	}
	return kb.Open(path)
}

type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*analysis.Session
	store    kb.Store
	tagger   tokens.Tagger
	catalog  *commands.Catalog
}

func (m *sessionManager) handle(in senses.Incoming) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[in.ChannelID]
	if !ok {
		s = analysis.NewSession(analysis.Config{
			Store:   m.store,
			Tagger:  m.tagger,
			Catalog: m.catalog,
			UserID:  in.AuthorID,
		})
		m.sessions[in.ChannelID] = s
	}

	msgs := s.WriteMessageToBot(in.Content)
	return texts(msgs)
}

func texts(msgs []session.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Text)
	}
	return out
}

func runREPL(store kb.Store, tagger tokens.Tagger, catalog *commands.Catalog) {
	s := analysis.NewSession(analysis.Config{
		Store:   store,
		Tagger:  tagger,
		Catalog: catalog,
		UserID:  "local",
	})

	fmt.Println(s.Welcome())
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		for _, msg := range s.WriteMessageToBot(line) {
			fmt.Println(msg.Text)
		}
	}
	fmt.Println("Goodbye!")
}

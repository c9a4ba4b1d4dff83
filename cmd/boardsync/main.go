package main

import (
	"bufio"
	"context"
	"errors"
	"freeform-backend/internal/autosave"
	"freeform-backend/internal/boardclient"
	"freeform-backend/internal/config"
	"freeform-backend/internal/document"
	"freeform-backend/internal/errs"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

// boardsync keeps a local board document in sync with the board API.
// Type "save" to save immediately, "logout" to end the session, "quit" to exit.
func main() {
	config.LoadEnv()
	cfg := config.LoadClient()

	if cfg.SessionToken == "" {
		log.Fatal("BOARD_SESSION_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := boardclient.New(cfg.APIURL, cfg.SessionToken, cfg.RequestTimeout)

	doc, err := document.Open(cfg.DocumentPath, cfg.ImagePath)
	if err != nil {
		log.Fatal("Failed to open document:", err)
	}

	// Load existing board, a fresh board is fine if this fails
	board, err := client.GetBoard(ctx)
	if err != nil {
		log.Println(err, "Error loading board")
	} else if board.Snapshot != nil {
		if err := doc.Load(board.Snapshot); err != nil {
			log.Println(err, "Error loading board into document")
		}
	}

	if profile, err := client.GetProfile(ctx); err != nil {
		log.Println(err, "Error fetching profile")
	} else {
		log.Printf("API token: %s", profile.APIToken)
	}

	controller := autosave.NewController(ctx, doc, client, client, autosave.Options{
		Debounce: cfg.Debounce,
		OnStatusChange: func(s autosave.Status) {
			log.Printf("board status: %s", s)
		},
		OnSaved: func(o autosave.Outcome) {
			if o.Err != nil {
				log.Println(o.Err, "Error saving board")
			}
		},
	})
	defer controller.Close()

	go func() {
		if err := doc.Watch(ctx, controller.NotifyEdit); err != nil {
			log.Println(err, "Error watching document")
			stop()
		}
	}()

	commands := make(chan string)
	go readCommands(commands)

	log.Printf("Watching %s, saving to %s", doc.Path(), cfg.APIURL)

	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-commands:
			if !ok {
				<-ctx.Done()
				return
			}
			switch cmd {
			case "save", "s":
				if err := controller.SaveNow(); errors.Is(err, errs.ErrSaveInProgress) {
					log.Println("save already running")
				}
			case "logout":
				if err := client.Logout(ctx); err != nil {
					log.Println(err, "Error signing out")
				}
				return
			case "quit", "q":
				return
			case "":
			default:
				log.Printf("unknown command %q", cmd)
			}
		}
	}
}

func readCommands(out chan<- string) {
	defer close(out)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		out <- strings.TrimSpace(scanner.Text())
	}
}

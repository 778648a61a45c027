/*
Package helios is a conversational healthcare assistant. It classifies free
text into intents (nearest hospital, nearby medical shops, urgent email),
dispatches each intent to a handler backed by external services, and keeps
per-conversation state so follow-up messages can confirm or escalate the
previous answer.

# Concept

Every message runs through one orchestration step: classify, dispatch,
format, persist. The handlers talk to the outside world through narrow
ports (Geocoder, PlacesSearcher, Mailer, ConversationStore), so any of them
can be swapped for a stub or a different provider. This Hexagonal
Architecture lets the same core serve a CLI, an HTTP API, or an MCP agent
surface.

# Key Features

  - Keyword intent classification with a deterministic fallback.
  - Haversine nearest-facility search over a CSV hospital catalog.
  - Follow-up handling: a "yes" closes the loop, a "no" escalates by email.
  - Interchangeable execution strategies (direct calls or a node pipeline)
    that produce identical responses.
  - Conversation persistence in memory, on disk, or in Redis.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"
		"log/slog"

		"github.com/helioscommand/helios"
		"github.com/helioscommand/helios/internal/config"
		"github.com/helioscommand/helios/internal/logging"
	)

	func main() {
		cfg, err := config.Load("helios.yaml", false)
		if err != nil {
			log.Fatal(err)
		}

		assistant, err := helios.NewFromConfig(cfg, logging.New(slog.LevelInfo))
		if err != nil {
			log.Fatal(err)
		}

		id := helios.NewConversationID()
		reply, err := assistant.Ask(context.Background(), id, "nearest hospital in Adyar, Chennai")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(reply)
	}
*/
package helios

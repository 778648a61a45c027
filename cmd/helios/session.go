package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helioscommand/helios/internal/config"
	"github.com/helioscommand/helios/pkg/adapters/file"
	"github.com/helioscommand/helios/pkg/adapters/memory"
	redisstore "github.com/helioscommand/helios/pkg/adapters/redis"
	"github.com/helioscommand/helios/pkg/ports"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored conversations",
	Long:  `List, inspect, reset and remove conversations in the configured store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all stored conversations",
	Run: func(cmd *cobra.Command, args []string) {
		store := getStore(cmd)
		ids, err := store.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing conversations: %v\n", err)
			os.Exit(1)
		}

		if len(ids) == 0 {
			fmt.Println("No stored conversations found.")
			return
		}

		fmt.Println("Stored conversations:")
		for _, id := range ids {
			fmt.Println("- " + id)
		}
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <conversation-id>",
	Short: "Inspect the state of a conversation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := getStore(cmd)

		conv, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error loading conversation '%s': %v\n", args[0], err)
			os.Exit(1)
		}

		data, err := json.MarshalIndent(conv, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling conversation: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset <conversation-id>",
	Short: "Clear a conversation's turns while keeping its ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := getStore(cmd)

		conv, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error loading conversation '%s': %v\n", args[0], err)
			os.Exit(1)
		}
		conv.Reset()
		if err := store.Save(cmd.Context(), conv); err != nil {
			fmt.Printf("Error saving conversation '%s': %v\n", args[0], err)
			os.Exit(1)
		}
		fmt.Printf("Reset conversation '%s'\n", args[0])
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <conversation-id>...",
	Short: "Remove one or more conversations",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := getStore(cmd)
		hasError := false

		for _, id := range args {
			if err := store.Delete(cmd.Context(), id); err != nil {
				fmt.Printf("Error removing '%s': %v\n", id, err)
				hasError = true
			} else {
				fmt.Printf("Removed conversation '%s'\n", id)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionResetCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}

// getStore opens the conversation store named by the configuration. Note the
// memory backend holds nothing between processes, so session commands are
// only useful with the file or redis backends.
func getStore(cmd *cobra.Command) ports.ConversationStore {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	switch cfg.Store.Backend {
	case config.StoreFile:
		store, err := file.NewStore(cfg.Store.Dir)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			os.Exit(1)
		}
		return store
	case config.StoreRedis:
		return redisstore.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB)
	default:
		return memory.NewStore()
	}
}

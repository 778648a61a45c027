package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/helioscommand/helios"
)

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Ask the assistant a single question",
	Long: `Runs one orchestration step and prints the reply. Pass --conversation to
continue an existing conversation, e.g. to answer a follow-up with yes/no.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		assistant, _, _, err := buildAssistant(cmd)
		if err != nil {
			fmt.Printf("Error initializing helios: %v\n", err)
			os.Exit(1)
		}

		id, _ := cmd.Flags().GetString("conversation")
		if id == "" {
			id = helios.NewConversationID()
		}

		reply, err := assistant.Ask(cmd.Context(), id, strings.Join(args, " "))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(reply)
		fmt.Printf("(conversation: %s)\n", id)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringP("conversation", "c", "", "Conversation ID to continue")
}

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/helioscommand/helios"
	"github.com/helioscommand/helios/internal/presentation/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Opens a terminal chat with the assistant. Type your question and press
enter; 'quit', 'exit' or 'bye' ends the session.`,
	Run: func(cmd *cobra.Command, args []string) {
		assistant, _, logger, err := buildAssistant(cmd)
		if err != nil {
			fmt.Printf("Error initializing helios: %v\n", err)
			os.Exit(1)
		}

		id, _ := cmd.Flags().GetString("conversation")
		if id == "" {
			id = helios.NewConversationID()
		}

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		render := func(s string) string { return s }
		if interactive {
			tui.PrintBanner()
			render = tui.NewRenderer()
		}

		fmt.Print(render(assistant.Greeting()))
		fmt.Println()

		reader := bufio.NewReader(os.Stdin)
		for {
			if interactive {
				fmt.Print("> ")
			}
			line, err := reader.ReadString('\n')
			if err != nil {
				break
			}
			input := strings.TrimSpace(line)
			if input == "" {
				continue
			}
			if input == "quit" || input == "exit" || input == "bye" {
				fmt.Println("Take care. Goodbye!")
				break
			}

			reply, err := assistant.Ask(cmd.Context(), id, input)
			if err != nil {
				logger.Error("query failed", "conversation", id, "err", err)
				fmt.Println("Something went wrong, please try again.")
				continue
			}
			fmt.Print(render(reply))
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("conversation", "c", "", "Conversation ID to continue")
}

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/phananhtu1998/AI-Agent/internal/agent"
	"github.com/phananhtu1998/AI-Agent/internal/config"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	replyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	metaStyle   = lipgloss.NewStyle().Faint(true)
)

// chatCmd Trò chuyện với trợ lý ngay trên terminal
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Trò chuyện với trợ lý trên terminal",
	Long:  `Mở phiên trò chuyện tương tác với trợ lý ngay trên terminal, không cần HTTP server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		executor := agent.Initialize(ctx, cfg)
		sessionID := uuid.NewString()

		fmt.Println(titleStyle.Render("Trợ lý hội thoại — gõ tin nhắn, /quit để thoát"))
		fmt.Println(metaStyle.Render("phiên: " + sessionID))

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print(promptStyle.Render("bạn> "))
			if !scanner.Scan() {
				break
			}

			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}
			if text == "/quit" || text == "/exit" {
				break
			}

			resp := executor.Execute(ctx, agent.ChatRequest{
				SessionID: sessionID,
				Message:   text,
				Source:    "cli",
			})

			fmt.Println(replyStyle.Render(resp.Reply))
			fmt.Println(metaStyle.Render(fmt.Sprintf("[%s · %s]", resp.Skill, resp.Latency.Round(time.Millisecond))))
		}

		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

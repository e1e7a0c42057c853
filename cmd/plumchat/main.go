/*
Package main is the entry point for the plumchat terminal client.

It defines the cobra root command: flags and the Viper-backed config file feed
the connection settings, then the command wires the transport, relay and chat
session together and hands the session to the Bubble Tea UI.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"plumchat/internal/app/chat"
	"plumchat/internal/app/relay"
	"plumchat/internal/app/transport"
	"plumchat/internal/configs"
	"plumchat/internal/pkg/logx"
	"plumchat/internal/pkg/randx"
	"plumchat/internal/ui"
)

var configFile string

// rootCmd represents the base command: it connects to the room server and runs
// the chat view until the user quits.
var rootCmd = &cobra.Command{
	Use:   "plumchat",
	Short: "Terminal client for the plumchat chat room",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context())
	},
	SilenceUsage: true,
}

func init() {
	// deferring this allows the user to override the config path with a flag
	cobra.OnInitialize(func() {
		if err := configs.InitClientConfig(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
	})

	configDir, err := configs.ClientConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
	defaultConfigFilePath := filepath.Join(configDir, "plumchat.toml")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", defaultConfigFilePath, "config file")

	rootCmd.PersistentFlags().String("server", "ws://localhost:8080/ws", "WebSocket URL of the room server")
	rootCmd.PersistentFlags().String("username", "", "username to register (default: random guest nickname)")
	rootCmd.PersistentFlags().String("log-file", "", "log file path (logs are discarded when empty)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// expose to the application via viper
	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("username", rootCmd.PersistentFlags().Lookup("username"))
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func runChat(ctx context.Context) error {
	closer, err := logx.InitFileLogger(viper.GetString("log-file"), viper.GetBool("debug"))
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	username := viper.GetString("username")
	if username == "" {
		username, err = randx.GuestNickname()
		if err != nil {
			return fmt.Errorf("failed to generate a guest nickname: %w", err)
		}
	}

	broker := relay.NewBroker()
	defer broker.Close()

	// Subscribe before registering so no early frame is missed.
	sub := broker.Subscribe()
	defer sub.Cancel()

	ws, err := transport.Dial(ctx, viper.GetString("server"), broker)
	if err != nil {
		return err
	}
	defer ws.Close()

	session := chat.NewSession(ws)
	session.Initialize(username)

	program := tea.NewProgram(ui.NewModel(session, sub), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat view failed: %w", err)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

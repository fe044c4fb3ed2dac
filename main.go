// Package main provides the entry point for the sayline CLI application.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/sayline/sayline/tts"
	"github.com/sayline/sayline/tts/audio"
	"github.com/sayline/sayline/ui"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	device     string
	voice      string
	lang       string

	rootCmd = &cobra.Command{
		Use:   "sayline",
		Short: "Speak one line of text aloud, then get out of the way",
		Long: paragraph(
			fmt.Sprintf("\nType a line, press %s, and sayline synthesizes it with Google Cloud Text-to-Speech and plays it on your configured output device. The prompt closes as soon as you commit or click away; playback finishes in the background.", keyword("Enter")),
		),
		SilenceErrors: false,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          execute,
	}
)

func execute(cmd *cobra.Command, _ []string) error {
	cfg := tts.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unable to parse configuration: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	// CLI flags win over both file and environment.
	if cmd.Flags().Changed("device") {
		cfg.OutputDevice = device
	}
	if cmd.Flags().Changed("voice") {
		cfg.GCloudVoice = voice
	}
	if cmd.Flags().Changed("language") {
		cfg.GCloudLanguage = lang
	}

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, tts.ErrMissingConfig) {
			return fmt.Errorf("%w\n\nRun %s to set up %s", err, keyword("sayline config"), configName())
		}
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("sayline needs an interactive terminal")
	}

	sys, err := audio.OpenSystem()
	if err != nil {
		return err
	}
	defer sys.Close() //nolint:errcheck

	client := tts.NewClient(cfg.RequestTimeout, int64(cfg.MaxResponseMB)*1024*1024)
	pipeline := tts.NewPipeline(client, audio.NewWAVDecoder(), sys, sys)
	ctrl := tts.NewController(func(text string) tts.Outcome {
		return pipeline.Run(text, cfg)
	})

	if _, err := ui.NewProgram(cfg, ctrl).Run(); err != nil {
		return fmt.Errorf("unable to run prompt: %w", err)
	}

	// The window is gone but playback may still be running; exit is gated
	// on the completion signal, never on the window.
	ctrl.AwaitCompletion()
	return nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().StringVar(&device, "device", "", "output device name (exact match)")
	rootCmd.Flags().StringVar(&voice, "voice", "", "voice name, e.g. en-US-Standard-A")
	rootCmd.Flags().StringVar(&lang, "language", "", "BCP-47 language code, e.g. en-US")

	viper.SetDefault("font_size", 24)
	viper.SetDefault("width", 600)
	viper.SetDefault("request_timeout", "30s")
	viper.SetDefault("max_response_mb", 32)

	rootCmd.AddCommand(configCmd, devicesCmd, manCmd)
}

func configName() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return "sayline.toml"
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "sayline")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "sayline")}, dirs...)
	}

	if c := os.Getenv("SAYLINE_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("sayline")
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("sayline")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "sayline.toml")
	}
}

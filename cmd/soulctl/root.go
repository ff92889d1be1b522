package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"soulmatch/internal/catalog"
	"soulmatch/internal/codec"
	"soulmatch/internal/models"
	"soulmatch/internal/observability"
	"soulmatch/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultServer = "http://localhost:8001/api/analyze"

	keyLastToken  = "last_token"
	keyServer     = "server"
	keyAIEndpoint = "ai.endpoint"
	keyAIAPIKey   = "ai.apiKey"
	keyAIModel    = "ai.model"
)

// settableKeys maps `config set` names to keys in the state file.
var settableKeys = map[string]string{
	"server":   keyServer,
	"endpoint": keyAIEndpoint,
	"apiKey":   keyAIAPIKey,
	"model":    keyAIModel,
}

// CLI holds the state shared by all subcommands
type CLI struct {
	v        *viper.Viper
	cfgFile  string
	logLevel string

	codec   *codec.Codec
	catalog catalog.Catalog
	scoring *service.ScoringService
	prompts *service.PromptBuilder

	out, errOut io.Writer
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	cli := &CLI{
		v:       viper.New(),
		codec:   codec.New(),
		catalog: catalog.Default,
		scoring: service.NewScoringService(catalog.Default),
		prompts: service.NewPromptBuilder(),
		out:     out,
		errOut:  errOut,
	}

	rootCmd := &cobra.Command{
		Use:   "soulctl",
		Short: "Take the compatibility questionnaire and compare profiles from the terminal",
		Long: `soulctl encodes questionnaire answers into shareable tokens, scores two tokens
against each other and asks the report server for a narrative analysis.

Examples:
  soulctl questions --scenario friend
  soulctl encode --name Ann --scenario friend --answers 1,2,3,4,5,4,3,2
  soulctl score <host-token> <guest-token>
  soulctl analyze <guest-token>          # compares against your last token
  soulctl config set apiKey sk-xxx`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.loadState()
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().StringVar(&cli.cfgFile, "config", "", "state file (default $HOME/.soulctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newQuestionsCommand(cli),
		newEncodeCommand(cli),
		newDecodeCommand(cli),
		newScoreCommand(cli),
		newPromptCommand(cli),
		newAnalyzeCommand(cli),
		newConfigCommand(cli),
	)
	return rootCmd
}

func (c *CLI) statePath() (string, error) {
	if c.cfgFile != "" {
		return c.cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".soulctl.yaml"), nil
}

// loadState reads the state file. A missing file is an empty state.
func (c *CLI) loadState() error {
	path, err := c.statePath()
	if err != nil {
		return err
	}
	c.v.SetConfigFile(path)
	c.v.SetDefault(keyServer, defaultServer)
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func (c *CLI) saveState() error {
	path, err := c.statePath()
	if err != nil {
		return err
	}
	if err := c.v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// aiOverride returns the stored AI settings, or nil when none are stored.
func (c *CLI) aiOverride() *models.AIConfig {
	cfg := &models.AIConfig{
		Endpoint: c.v.GetString(keyAIEndpoint),
		APIKey:   c.v.GetString(keyAIAPIKey),
		Model:    c.v.GetString(keyAIModel),
	}
	if *cfg == (models.AIConfig{}) {
		return nil
	}
	return cfg
}

func (c *CLI) logger() *slog.Logger {
	return observability.NewLogger(observability.LogConfig{Level: c.logLevel, Output: c.errOut})
}

// decodeToken reads a profile token, naming the side on failure.
func (c *CLI) decodeToken(side, token string) (models.Profile, error) {
	profile, err := c.codec.Decode(token)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%s: %w", side, err)
	}
	return profile, nil
}

// pair resolves host and guest tokens. With one argument the host is the
// last token this CLI encoded.
func (c *CLI) pair(args []string) (models.Profile, models.Profile, error) {
	hostToken, guestToken := "", ""
	switch len(args) {
	case 1:
		hostToken = c.v.GetString(keyLastToken)
		if hostToken == "" {
			return models.Profile{}, models.Profile{}, errors.New("no saved token; run `soulctl encode` first or pass both tokens")
		}
		guestToken = args[0]
	case 2:
		hostToken, guestToken = args[0], args[1]
	default:
		return models.Profile{}, models.Profile{}, errors.New("expected <guest> or <host> <guest>")
	}

	host, err := c.decodeToken("host token", hostToken)
	if err != nil {
		return models.Profile{}, models.Profile{}, err
	}
	guest, err := c.decodeToken("guest token", guestToken)
	if err != nil {
		return models.Profile{}, models.Profile{}, err
	}
	return host, guest, nil
}

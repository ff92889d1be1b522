package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"soulmatch/internal/analysis"
	"soulmatch/internal/models"
	"soulmatch/internal/service"

	"github.com/spf13/cobra"
)

func newQuestionsCommand(cli *CLI) *cobra.Command {
	var scenarioFlag string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Print the questionnaire of a scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := models.ParseScenario(scenarioFlag)
			if err != nil {
				return err
			}
			questions := cli.catalog.Questions(scenario)
			if asJSON {
				enc := json.NewEncoder(cli.out)
				enc.SetIndent("", "  ")
				return enc.Encode(models.QuestionsResponse{
					Scenario:   scenario,
					Label:      scenario.Label(),
					Questions:  questions,
					Dimensions: cli.catalog.Dimensions(scenario),
				})
			}

			details := cli.catalog.Dimensions(scenario)
			var current models.Dimension
			fmt.Fprintf(cli.out, "%s, %d questions\n", scenario.Label(), len(questions))
			for _, q := range questions {
				if q.Dimension != current {
					current = q.Dimension
					fmt.Fprintf(cli.out, "\n%s\n", details[current].Title)
				}
				fmt.Fprintf(cli.out, "%2d. %s\n", q.ID, q.Text)
				for _, opt := range q.Options {
					fmt.Fprintf(cli.out, "      %d) %s\n", opt.Value, opt.Label)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&scenarioFlag, "scenario", string(models.DefaultScenario), "couple or friend")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newEncodeCommand(cli *CLI) *cobra.Command {
	var name, scenarioFlag, answersFlag string
	var noSave bool

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode answers into a shareable profile token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := models.ParseScenario(scenarioFlag)
			if err != nil {
				return err
			}
			answers, err := parseAnswers(answersFlag)
			if err != nil {
				return err
			}
			if want := len(cli.catalog.Questions(scenario)); len(answers) != want {
				return fmt.Errorf("%s needs %d answers, got %d", scenario.Label(), want, len(answers))
			}

			token, err := cli.codec.Encode(models.Profile{
				Version:   models.ProfileVersion,
				Name:      name,
				Scenario:  scenario,
				Answers:   answers,
				Timestamp: time.Now().UnixMilli(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cli.out, token)

			if noSave {
				return nil
			}
			cli.v.Set(keyLastToken, token)
			return cli.saveState()
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&scenarioFlag, "scenario", string(models.DefaultScenario), "couple or friend")
	cmd.Flags().StringVar(&answersFlag, "answers", "", "comma separated answers, 1-5 each")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not remember the token as your own")
	cmd.MarkFlagRequired("answers")
	return cmd
}

func newDecodeCommand(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [token]",
		Short: "Show the profile inside a token (default: your last token)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := cli.v.GetString(keyLastToken)
			if len(args) == 1 {
				token = args[0]
			}
			if token == "" {
				return fmt.Errorf("no token given and none saved")
			}
			profile, err := cli.decodeToken("token", token)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cli.out)
			enc.SetIndent("", "  ")
			return enc.Encode(profile)
		},
	}
}

func newScoreCommand(cli *CLI) *cobra.Command {
	var showMatrix bool

	cmd := &cobra.Command{
		Use:   "score [host] <guest>",
		Short: "Score two profiles locally",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			host, guest, err := cli.pair(args)
			if err != nil {
				return err
			}
			aiCtx, err := cli.scoring.BuildContext(host, guest)
			if err != nil {
				return err
			}
			fmt.Fprintln(cli.out, service.Summary(aiCtx.Scenario, aiCtx.MatchScore, false))
			if showMatrix {
				printMatrix(cli, aiCtx)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showMatrix, "matrix", false, "print the per-question comparison")
	return cmd
}

func newPromptCommand(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt [host] <guest>",
		Short: "Print the analysis prompt for two profiles",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			host, guest, err := cli.pair(args)
			if err != nil {
				return err
			}
			aiCtx, err := cli.scoring.BuildContext(host, guest)
			if err != nil {
				return err
			}
			fmt.Fprintln(cli.out, cli.prompts.BuildPrompt(aiCtx))
			return nil
		},
	}
}

func newAnalyzeCommand(cli *CLI) *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "analyze [host] <guest>",
		Short: "Ask the report server for a narrative analysis",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			host, guest, err := cli.pair(args)
			if err != nil {
				return err
			}
			if server == "" {
				server = cli.v.GetString(keyServer)
			}

			client := analysis.NewClient(server)
			client.Logger = cli.logger()

			printed := 0
			result, err := client.Analyze(cmd.Context(), host, guest, cli.aiOverride(), analysis.Callbacks{
				OnRetry: func(attempt int) {
					fmt.Fprintf(cli.errOut, "report server unavailable, retry %d...\n", attempt)
				},
				OnStream: func(text string) {
					if len(text) > printed {
						fmt.Fprint(cli.out, text[printed:])
						printed = len(text)
					}
				},
			})
			if err != nil {
				return err
			}

			if result.Degraded {
				fmt.Fprintln(cli.out, result.Details)
			} else if printed > 0 {
				fmt.Fprintln(cli.out)
			}
			fmt.Fprintln(cli.out)
			fmt.Fprintln(cli.out, result.Summary)
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "analyze endpoint (default from state file)")
	return cmd
}

func newConfigCommand(cli *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage saved settings",
	}

	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Save a setting (server, endpoint, apiKey, model)",
		Args:      cobra.ExactArgs(2),
		ValidArgs: keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := settableKeys[args[0]]
			if !ok {
				return fmt.Errorf("unknown setting %q", args[0])
			}
			cli.v.Set(key, args[1])
			if err := cli.saveState(); err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "%s saved\n", args[0])
			return nil
		},
	})
	return cmd
}

func parseAnswers(s string) ([]int, error) {
	var answers []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("answer %q is not a number", part)
		}
		if v < models.MinAnswer || v > models.MaxAnswer {
			return nil, fmt.Errorf("answer %d is outside %d-%d", v, models.MinAnswer, models.MaxAnswer)
		}
		answers = append(answers, v)
	}
	return answers, nil
}

func printMatrix(cli *CLI, aiCtx *models.AIContext) {
	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tdimension\t%s\t%s\tdiff\n", aiCtx.Host.DisplayName("A"), aiCtx.Guest.DisplayName("B"))
	for _, p := range aiCtx.ComparisonMatrix {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", p.ID, p.Dimension, p.ALabel, p.BLabel, p.Difference)
	}
	tw.Flush()
}

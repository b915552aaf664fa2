package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/talentscout/screener/internal/auth"
	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/shortlist"
	"github.com/talentscout/screener/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const maxLoginAttempts = 3

var shortlistCmd = &cobra.Command{
	Use:   "shortlist",
	Short: "Rank stored screenings against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		shortlistRun(cmd)
	},
}

func init() {
	rootCmd.AddCommand(shortlistCmd)

	shortlistCmd.Flags().StringP("job-file", "f", "", "file with the job description. Default is to ask interactively.")
}

func shortlistRun(cmd *cobra.Command) {
	ctx := context.Background()

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		fatalBootstrap("creating a logger", err)
	}

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	if err := recruiterLogin(config.Auth, log); err != nil {
		log.Fatal("recruiter login failed", zap.Error(err))
	}

	jobDescription, err := readJobDescription(cmd)
	if err != nil {
		log.Fatal("reading the job description", zap.Error(err))
	}

	client, err := newAIClient(ctx, config.AI)
	if err != nil {
		log.Fatal("building the ai client", zap.Error(err))
	}

	records, err := store.New(config.Store.Dir).List()
	if err != nil {
		log.Fatal("listing screening records", zap.Error(err))
	}

	log.Info("analyzing stored screenings", zap.Int("count", len(records)))

	shortlister := shortlist.New(client, logger.WithGeneration(log, "gemini", client.Model()), config.AI.Gemini.MaxLogLength)

	report, err := shortlister.Report(ctx, jobDescription, records)
	if err != nil {
		log.Fatal("generating the shortlist report", zap.Error(err))
	}

	fmt.Printf("\n%s\n", report)
}

func readJobDescription(cmd *cobra.Command) (string, error) {
	if file := cmd.Flag("job-file").Value.String(); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read job description file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	return promptString("Job description", func(input string) error {
		if strings.TrimSpace(input) == "" {
			return errors.New("job description must not be empty")
		}
		return nil
	})
}

// recruiterLogin guards the recruiter-side commands with the shared password.
func recruiterLogin(config *AuthConfig, log *zap.Logger) error {
	gate := auth.New(config.PasswordHashFile)

	for attempt := 1; attempt <= maxLoginAttempts; attempt++ {
		fmt.Print("Recruiter password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		ok, seeded, err := gate.Check(string(raw))
		if err != nil {
			return err
		}

		if seeded {
			log.Warn("no recruiter password was set, the default one has been seeded",
				zap.String("hint", "change it with the 'passwd' command"),
			)
		}

		if ok {
			return nil
		}

		log.Warn("wrong password", zap.Int("attempts_left", maxLoginAttempts-attempt))
	}

	return errors.New("too many failed login attempts")
}

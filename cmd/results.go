package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const PromptBack = "back"

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Browse stored screening records",
	Run: func(_ *cobra.Command, _ []string) {
		results()
	},
}

func init() {
	rootCmd.AddCommand(resultsCmd)
}

func results() {
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

	records, err := store.New(config.Store.Dir).List()
	if err != nil {
		log.Fatal("listing screening records", zap.Error(err))
	}

	if len(records) == 0 {
		log.Info("exiting", zap.String("reason", "no screening records found"))
		return
	}

	for {
		items := make([]string, 0, len(records)+1)
		for _, record := range records {
			items = append(items, fmt.Sprintf("%s  %s / %s",
				record.Timestamp.Format("2006-01-02 15:04"),
				record.Candidate.FullName,
				record.Candidate.DesiredPosition,
			))
		}

		recordPrompt := promptui.Select{
			Label: "Choose a screening record and press ENTER",
			Items: append(items, PromptBack),
		}

		index, selected, err := recordPrompt.Run()
		if err != nil {
			log.Fatal("exiting", zap.Error(err))
		}

		if selected == PromptBack {
			return
		}

		printRecord(records[index])
	}
}

func printRecord(record *store.Record) {
	fmt.Printf("\nCandidate: %s <%s> %s\n", record.Candidate.FullName, record.Candidate.Email, record.Candidate.Phone)
	fmt.Printf("Position:  %s (%d years), %s\n", record.Candidate.DesiredPosition, record.Candidate.ExperienceYears, record.Candidate.Location)
	fmt.Printf("Stack:     %s\n", strings.Join(record.Candidate.TechStack, ", "))
	fmt.Printf("\nSummary:\n%s\n", record.Summary)

	questions := make([]string, 0, len(record.Answers))
	for question := range record.Answers {
		questions = append(questions, question)
	}
	sort.Strings(questions)

	fmt.Println("\nTechnical responses:")
	for _, question := range questions {
		answer := record.Answers[question]
		fmt.Printf("\nQ: %s\nSentiment: %s\nA: %s\n", question, answer.Sentiment, answer.Text)
	}
	fmt.Println()
}

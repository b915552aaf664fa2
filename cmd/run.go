package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	stdlog "log"
	"strconv"
	"strings"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/ai/gemini"
	"github.com/talentscout/screener/internal/candidate"
	"github.com/talentscout/screener/internal/interview"
	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/resume"
	"github.com/talentscout/screener/internal/secrets"
	"github.com/talentscout/screener/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptAnswer = "Answer the question"
	PromptEasier = "Ask for an easier question"
	PromptQuit   = "End the interview"

	closingMessage = "Thank you for your time. The screening is complete; " +
		"our recruitment team will review your responses and reach out about next steps."
)

var errExit = errors.New("exit requested")

var actionPrompt = promptui.Select{
	Label: "What would you like to do?",
	Items: []string{PromptAnswer, PromptEasier, PromptQuit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive screening interview",
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("resume", "r", "", "path to the candidate resume (PDF). Default is unset.")
	runCmd.Flags().StringP("summaries-dir", "s", "", "directory for screening summaries. Default is ./"+store.DefaultDir+".")

	viper.BindPFlag("resume.file", runCmd.Flags().Lookup("resume"))
	viper.BindPFlag("store.dir", runCmd.Flags().Lookup("summaries-dir"))
}

// run is the main command for the cli.
func run() {
	ctx := context.Background()

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		fatalBootstrap("creating a logger", err)
	}

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	log.Info("starting the screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	client, err := newAIClient(ctx, config.AI)
	if err != nil {
		log.Fatal("building the ai client", zap.Error(err))
	}

	profile, err := collectProfile()
	if err != nil {
		log.Fatal("collecting candidate details", zap.Error(err))
	}

	provider := buildResumeProvider(ctx, config.Resume, client, log)
	resumeContext := resume.Context(ctx, provider, profile.TechStack)

	genLogger := logger.WithGeneration(log, "gemini", client.Model())
	maxLogLength := config.AI.Gemini.MaxLogLength

	machine := interview.NewMachine(
		interview.NewQuestioner(client, genLogger, maxLogLength),
		interview.NewAnalyzer(client, genLogger, maxLogLength),
		interview.NewAdjuster(client, genLogger, maxLogLength),
		interview.NewSummarizer(client, genLogger),
		log,
	)

	session, err := machine.Start(ctx, profile, resumeContext)
	if err != nil {
		log.Fatal("starting the interview", zap.Error(err))
	}

	fmt.Printf("\nHello %s! I am Scout, your screening interviewer. "+
		"I will ask a few technical questions about your declared stack.\n", profile.FullName)

	for !session.Concluded() {
		turn, _ := session.LastTurn()
		fmt.Printf("\nScout: %s\n\n", turn.Text)

		input, err := nextInput(ctx, machine, session)
		if err != nil {
			if errors.Is(err, errExit) {
				log.Info("exiting", zap.String("reason", "candidate ended the interview"))
				return
			}
			log.Fatal("reading candidate input", zap.Error(err))
		}

		if err := machine.Advance(ctx, session, input); err != nil {
			log.Fatal("advancing the interview", zap.Error(err))
		}
	}

	fmt.Printf("\nScout: %s\n", closingMessage)

	path, err := store.New(config.Store.Dir).Save(store.NewRecord(session))
	if err != nil {
		log.Fatal("saving the screening record", zap.Error(err))
	}

	log.Info("screening record saved", zap.String("path", path))
}

// nextInput gets the next candidate message. A pending main question offers
// the easier-question and quit actions first; a pending follow-up is answered
// directly.
func nextInput(ctx context.Context, machine *interview.Machine, session *interview.Session) (string, error) {
	for session.State == interview.StateMainQuestion {
		_, action, err := actionPrompt.Run()
		if err != nil {
			return "", err
		}

		switch action {
		case PromptAnswer:
			return readAnswer()
		case PromptEasier:
			if err := machine.RequestEasierQuestion(ctx, session); err != nil {
				return "", err
			}

			question, _ := session.CurrentQuestion()
			fmt.Printf("\nScout: %s\n\n", question)
		case PromptQuit:
			return "", errExit
		}
	}

	return readAnswer()
}

func readAnswer() (string, error) {
	prompt := promptui.Prompt{
		Label: "You",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("answer must not be empty")
			}
			return nil
		},
	}

	answer, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(answer), nil
}

// collectProfile asks for the candidate details one field at a time, each with
// its own validator.
func collectProfile() (candidate.Profile, error) {
	var profile candidate.Profile

	fullName, err := promptString("Full name", candidate.ValidateName)
	if err != nil {
		return profile, err
	}

	email, err := promptString("Email address", candidate.ValidateEmail)
	if err != nil {
		return profile, err
	}

	phone, err := promptString("Phone number", candidate.ValidatePhone)
	if err != nil {
		return profile, err
	}

	experience, err := promptString("Years of experience", func(input string) error {
		years, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			return errors.New("years of experience must be a number")
		}
		if years < 0 {
			return errors.New("years of experience cannot be negative")
		}
		return nil
	})
	if err != nil {
		return profile, err
	}

	position, err := promptString("Desired position", func(input string) error {
		if len(strings.TrimSpace(input)) < 2 {
			return errors.New("desired position must be at least 2 characters")
		}
		return nil
	})
	if err != nil {
		return profile, err
	}

	location, err := promptString("Current location", func(input string) error {
		if len(strings.TrimSpace(input)) < 2 {
			return errors.New("location must be at least 2 characters")
		}
		return nil
	})
	if err != nil {
		return profile, err
	}

	stack, err := promptString("Tech stack (comma-separated)", func(input string) error {
		if len(candidate.ParseTechStack(input)) == 0 {
			return errors.New("tech stack cannot be empty")
		}
		return nil
	})
	if err != nil {
		return profile, err
	}

	years, _ := strconv.Atoi(strings.TrimSpace(experience))

	profile = candidate.Profile{
		FullName:        fullName,
		Email:           email,
		Phone:           phone,
		ExperienceYears: years,
		DesiredPosition: position,
		Location:        location,
		TechStack:       candidate.ParseTechStack(stack),
	}

	return profile, profile.Validate()
}

func promptString(label string, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}

	value, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(value), nil
}

func newAIClient(ctx context.Context, config *AIConfig) (*gemini.Client, error) {
	provider := strings.TrimSpace(strings.ToLower(config.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", config.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.Gemini.APIKey,
		File:  config.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	return gemini.New(ctx, apiKey, config.Gemini.Model, config.Gemini.EmbeddingModel)
}

// resumeIndex is what both chunk index backends provide.
type resumeIndex interface {
	resume.Provider
	Add(ctx context.Context, chunks []string) error
}

// buildResumeProvider prepares the retrieval index for the resume, if one was
// given. The resume is optional and every failure here degrades to an
// interview without resume context.
func buildResumeProvider(ctx context.Context, config *ResumeConfig, embedder ai.Embedder, log *zap.Logger) resume.Provider {
	file := strings.TrimSpace(config.File)
	if file == "" {
		return nil
	}

	text, err := resume.ExtractText(file)
	if err != nil {
		log.Warn("skipping resume context", zap.Error(err))
		return nil
	}

	chunks := resume.SplitChunks(text, config.ChunkSize, config.ChunkOverlap)

	index, err := newResumeIndex(config, embedder, log)
	if err != nil {
		log.Warn("skipping resume context", zap.Error(err))
		return nil
	}

	if err := index.Add(ctx, chunks); err != nil {
		log.Warn("skipping resume context", zap.Error(err))
		return nil
	}

	log.Info("resume indexed", zap.String("file", file), zap.Int("chunks", len(chunks)))

	return index
}

func newResumeIndex(config *ResumeConfig, embedder ai.Embedder, log *zap.Logger) (resumeIndex, error) {
	if config.Qdrant == nil || config.Qdrant.Host == "" {
		return resume.NewMemoryIndex(embedder, log, config.TopK), nil
	}

	var apiKey string
	if config.Qdrant.APIKeyFile != "" {
		key, err := secrets.Load(secrets.Source{
			Name: "qdrant api key",
			File: config.Qdrant.APIKeyFile,
		})
		if err != nil {
			return nil, err
		}
		apiKey = key
	}

	return resume.NewQdrantIndex(resume.QdrantParams{
		Host:       config.Qdrant.Host,
		Port:       config.Qdrant.Port,
		APIKey:     apiKey,
		UseTLS:     config.Qdrant.UseTLS,
		Collection: config.Qdrant.Collection,
	}, embedder, log, config.TopK)
}

func fatalBootstrap(msg string, err error) {
	stdlog.Fatalf("%s: %s", msg, err)
}

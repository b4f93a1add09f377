package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/pioneers-ai-hackaton/workly-ai/internal/ai"
	"github.com/pioneers-ai-hackaton/workly-ai/internal/conversation"
	"github.com/pioneers-ai-hackaton/workly-ai/internal/logger"
	"github.com/pioneers-ai-hackaton/workly-ai/internal/profile"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const chatMaxLogLength = 200

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run the job-matching conversation in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		chat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func chat(_ *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	generator, err := newGenerator(ctx, config.AI, zlog)
	if err != nil {
		zlog.Fatal("building the ai generator", zap.Error(err))
	}

	session := conversation.NewSession(generator, zlog)

	fmt.Printf("workly %s\n\n%s\n", version, conversation.Greeting)

	for !session.Complete() {
		input, err := readMessage(session.Phase())
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				fmt.Println("\nBye!")
				return
			}
			zlog.Fatal("reading input", zap.Error(err))
		}

		result, err := session.Exchange(ctx, input)
		if err != nil {
			fmt.Println(exchangeNotice(err))
			if !ai.Retryable(err) && !errors.Is(err, conversation.ErrEmptyMessage) {
				return
			}
			continue
		}

		fmt.Printf("\n%s\n", result.Message)
	}

	printProfile(ctx, generator, session, zlog)
}

// readMessage prompts for one line of user input, labelled with the current
// interview step.
func readMessage(phase conversation.Phase) (string, error) {
	prompt := promptui.Prompt{
		Label: fmt.Sprintf("[%d/5 %s] You", phase, phase.Label()),
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("message must not be empty")
			}
			return nil
		},
	}

	return prompt.Run()
}

// printProfile generates the CV and match list once the conversation is done
// and pretty-prints both.
func printProfile(ctx context.Context, generator ai.Generator, session *conversation.Session, zlog *zap.Logger) {
	fmt.Println("\nGenerating your CV and job matches...")

	cvBuilder := profile.NewCVBuilder(generator, zlog, chatMaxLogLength)
	cv, err := cvBuilder.Generate(ctx, session.UserContent())
	if err != nil {
		zlog.Fatal("generating cv", zap.Error(err))
	}

	finder := profile.NewMatchFinder(generator, zlog, chatMaxLogLength)
	companies, err := finder.Generate(ctx, session.UserContent())
	if err != nil {
		zlog.Fatal("generating job matches", zap.Error(err))
	}

	prettyCV, _ := json.MarshalIndent(cv, "", "  ")
	prettyMatches, _ := json.MarshalIndent(companies, "", "  ")

	fmt.Printf("\nYour CV:\n%s\n\nYour job matches:\n%s\n", prettyCV, prettyMatches)
}

// exchangeNotice translates an exchange error into a short terminal notice.
func exchangeNotice(err error) string {
	switch {
	case errors.Is(err, conversation.ErrEmptyMessage):
		return "Please type a message."
	case errors.Is(err, ai.ErrRateLimited):
		return "Rate limit exceeded. Please try again in a moment."
	case errors.Is(err, ai.ErrQuotaExceeded):
		return "Service limit reached. Please contact support."
	case ai.Retryable(err):
		return "Failed to get a response. Please try again."
	default:
		return fmt.Sprintf("Unrecoverable error: %s", err)
	}
}

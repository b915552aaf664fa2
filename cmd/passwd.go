package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/talentscout/screener/internal/auth"
	"github.com/talentscout/screener/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Set the recruiter password",
	Run: func(_ *cobra.Command, _ []string) {
		passwd()
	},
}

func init() {
	rootCmd.AddCommand(passwdCmd)
}

func passwd() {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		fatalBootstrap("creating a logger", err)
	}

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	password, err := readNewPassword()
	if err != nil {
		log.Fatal("reading the new password", zap.Error(err))
	}

	if err := auth.New(config.Auth.PasswordHashFile).SetPassword(password); err != nil {
		log.Fatal("setting the recruiter password", zap.Error(err))
	}

	log.Info("recruiter password updated")
}

func readNewPassword() (string, error) {
	fmt.Print("New recruiter password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}

	fmt.Print("Repeat password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}

	return string(first), nil
}

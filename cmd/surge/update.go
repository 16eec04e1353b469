package main

import (
	"fmt"
	"os"

	"github.com/blang/semver"
	"github.com/charmbracelet/huh"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"
)

const githubRepoSlug = "blackcoderx/surge"

var updateYes bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update surge to the latest GitHub release",
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().BoolVarP(&updateYes, "yes", "y", false, "skip the confirmation prompt")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	current, err := semver.Parse(version)
	if err != nil {
		return fmt.Errorf("cannot self-update a dev build")
	}

	latest, found, err := selfupdate.DetectLatest(githubRepoSlug)
	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}
	if !found || latest.Version.LTE(current) {
		fmt.Printf("current version %s is up to date\n", version)
		return nil
	}

	if !updateYes {
		confirmed := false
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Update surge %s -> %s?", version, latest.Version)).
			Affirmative("Update").
			Negative("Cancel").
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			return fmt.Errorf("confirmation prompt: %w", err)
		}
		if !confirmed {
			fmt.Println("update cancelled")
			return nil
		}
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating executable: %w", err)
	}
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("updating: %w", err)
	}

	fmt.Printf("updated to version %s\n", latest.Version)
	return nil
}

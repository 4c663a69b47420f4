package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alevelmaths/alevel/internal/selfupdate"
	"github.com/spf13/cobra"
)

const (
	checkTimeout   = 30 * time.Second
	installTimeout = 2 * time.Minute
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update alevel to the latest release",
	Long: `Download the release archive for this platform, verify it against the
release's checksums.txt and replace the running binary.

Use --check to only report whether a newer release exists, or --to to
install a specific tag.`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether a newer release exists")
	updateCmd.Flags().String("to", "", "Install this release tag instead of the latest")
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	checker := selfupdate.NewChecker(selfupdate.WithTimeout(installTimeout))
	out := cmd.OutOrStdout()

	if check, _ := cmd.Flags().GetBool("check"); check {
		ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
		defer cancel()
		return checkForUpdate(ctx, cmd, checker)
	}

	target, _ := cmd.Flags().GetString("to")
	ctx, cancel := context.WithTimeout(cmd.Context(), installTimeout)
	defer cancel()

	err := checker.Update(ctx, &selfupdate.UpdateInput{CurrentVersion: version, TargetVersion: target},
		func(p selfupdate.UpdateProgress) { fmt.Fprintln(out, p.Message) })
	switch {
	case err == nil:
		return nil
	case errors.Is(err, selfupdate.ErrDevBuild):
		fmt.Fprintln(out, "Cannot update a development build. Install a release build first.")
		return nil
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		fmt.Fprintf(out, "alevel %s is already the latest release.\n", version)
		return nil
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w\n\nTry running: sudo alevel update", err)
	}
	return err
}

// checkForUpdate reports whether a newer release exists without installing it.
func checkForUpdate(ctx context.Context, cmd *cobra.Command, checker *selfupdate.Checker) error {
	out := cmd.OutOrStdout()
	res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
	if errors.Is(err, selfupdate.ErrDevBuild) {
		fmt.Fprintln(out, "Development build; release checks are skipped.")
		return nil
	}
	if err != nil {
		return err
	}
	if !res.UpdateAvailable {
		fmt.Fprintf(out, "alevel %s is the latest release.\n", version)
		return nil
	}
	fmt.Fprintf(out, "alevel %s is available (you have %s).\n%s\nRun \"alevel update\" to install it.\n",
		res.LatestVersion, version, res.ReleaseURL)
	return nil
}

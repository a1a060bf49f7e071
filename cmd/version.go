package cmd

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// repository is the GitHub slug releases are published under
const repository = "s0up4200/ethproofs"

var (
	version   = "dev"
	buildTime = "unknown"
)

// SetVersion records the build information set by the linker
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipInitialization,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ethproofs %s (built %s, %s %s/%s)\n",
			version, buildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:               "update",
	Short:             "Update ethproofs to the latest release",
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipInitialization,
	RunE:              runUpdate,
}

var checkOnly bool

func init() {
	rootCmd.AddCommand(versionCmd, updateCmd)

	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether an update is available")
}

// parseVersion parses a release version, tolerating a leading v
func parseVersion(v string) (semver.Version, error) {
	parsed, err := semver.ParseTolerant(v)
	if err != nil {
		return semver.Version{}, fmt.Errorf("invalid version %q: %w", v, err)
	}
	return parsed, nil
}

// needsUpdate reports whether latest is newer than current
func needsUpdate(current, latest string) (bool, error) {
	cur, err := parseVersion(current)
	if err != nil {
		return false, err
	}
	lat, err := parseVersion(latest)
	if err != nil {
		return false, err
	}
	return lat.GT(cur), nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if _, err := parseVersion(version); err != nil {
		return errors.New("development builds cannot be updated, install a release instead")
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repository))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	newer, err := needsUpdate(version, latest.Version())
	if err != nil {
		return err
	}
	if !newer {
		fmt.Fprintf(out, "✓ ethproofs %s is up to date\n", version)
		return nil
	}

	if checkOnly {
		fmt.Fprintf(out, "ethproofs %s is available (current %s)\n", latest.Version(), version)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Fprintf(out, "✓ Updated ethproofs %s -> %s\n", version, latest.Version())
	return nil
}

// Package deps detects the external media players the play command can hand
// a video to.
package deps

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/agentstation/signlib/pkg/errors"
)

// Player describes an external program that can play a video file.
type Player struct {
	Name        string
	DisplayName string
	// CheckCommands are tried in order; the first found in PATH is used.
	CheckCommands []string
	// Args are placed before the file path.
	Args []string
}

// Status is the result of looking a player up.
type Status struct {
	Available  bool
	Path       string
	Version    string
	CheckError error
}

// Players lists the supported players in preference order.
var Players = []Player{
	{Name: "mpv", DisplayName: "mpv", CheckCommands: []string{"mpv"}, Args: []string{"--really-quiet"}},
	{Name: "ffplay", DisplayName: "FFplay", CheckCommands: []string{"ffplay"}, Args: []string{"-autoexit", "-loglevel", "error"}},
	{Name: "vlc", DisplayName: "VLC", CheckCommands: []string{"vlc", "cvlc"}, Args: []string{"--play-and-exit"}},
	{Name: "open", DisplayName: "System default", CheckCommands: []string{"xdg-open", "open"}},
}

// Names returns the player names in preference order.
func Names() []string {
	names := make([]string, len(Players))
	for i, p := range Players {
		names[i] = p.Name
	}
	return names
}

// Lookup returns the player with the given name.
func Lookup(name string) (Player, bool) {
	for _, p := range Players {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Player{}, false
}

// Check verifies if a player is available on the system.
// It tries all CheckCommands in order and returns the first one that succeeds.
func Check(ctx context.Context, p Player, withVersion bool) Status {
	status := Status{}

	for _, cmd := range p.CheckCommands {
		path, err := exec.LookPath(cmd)
		if err != nil {
			continue
		}

		status.Available = true
		status.Path = path
		if withVersion {
			version, err := getVersion(ctx, path)
			if err != nil {
				status.CheckError = fmt.Errorf("found %s but could not detect version: %w", cmd, err)
			} else {
				status.Version = version
			}
		}
		return status
	}

	if len(p.CheckCommands) > 0 {
		status.CheckError = fmt.Errorf("%s not found in PATH (tried: %s)", p.DisplayName, strings.Join(p.CheckCommands, ", "))
	}
	return status
}

// CheckAll checks every known player, keyed by name.
func CheckAll(ctx context.Context, withVersion bool) map[string]Status {
	results := make(map[string]Status, len(Players))
	for _, p := range Players {
		results[p.Name] = Check(ctx, p, withVersion)
	}
	return results
}

// Find returns the first available player. A non-empty preferred name
// restricts the search to that player.
func Find(ctx context.Context, preferred string) (Player, Status, error) {
	candidates := Players
	if preferred != "" {
		p, ok := Lookup(preferred)
		if !ok {
			return Player{}, Status{}, errors.NewValidationError("player", preferred, "unknown player, use one of "+strings.Join(Names(), ", "))
		}
		candidates = []Player{p}
	}

	var tried []string
	for _, p := range candidates {
		st := Check(ctx, p, false)
		if st.Available {
			return p, st, nil
		}
		tried = append(tried, p.CheckCommands...)
	}
	return Player{}, Status{}, errors.NewResourceError("find", "player", "",
		errors.New("no media player found in PATH (tried: "+strings.Join(tried, ", ")+")"))
}

// Command builds the command that plays file with p.
func Command(ctx context.Context, p Player, st Status, file string) *exec.Cmd {
	args := append(append([]string{}, p.Args...), file)
	//nolint:gosec // the binary comes from the fixed Players table
	return exec.CommandContext(ctx, st.Path, args...)
}

// getVersion attempts to get the version of a command.
// This is a best-effort attempt - different tools have different version flags.
func getVersion(ctx context.Context, cmdPath string) (string, error) {
	for _, flag := range []string{"--version", "-version"} {
		//nolint:gosec // cmdPath comes from exec.LookPath on a fixed table
		output, err := exec.CommandContext(ctx, cmdPath, flag).CombinedOutput()
		if err != nil {
			continue
		}
		if version := extractVersion(string(output)); version != "" {
			return version, nil
		}
	}
	return "", fmt.Errorf("could not determine version")
}

var versionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`version\s+v?(\d+\.\d+(?:\.\d+)?)`),
	regexp.MustCompile(`v?(\d+\.\d+\.\d+)`),
	regexp.MustCompile(`(\d+\.\d+)`),
}

// extractVersion pulls a version number out of a --version banner.
func extractVersion(output string) string {
	for _, re := range versionPatterns {
		if m := re.FindStringSubmatch(output); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

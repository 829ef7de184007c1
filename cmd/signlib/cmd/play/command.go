// Package play provides the play command.
package play

import (
	"context"
	"io"
	"os"
	"os/exec"
	"sort"

	"github.com/spf13/cobra"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/internal/appcontext"
	"github.com/agentstation/signlib/internal/cmd/cmdutil"
	"github.com/agentstation/signlib/internal/cmd/completion"
	"github.com/agentstation/signlib/internal/cmd/emoji"
	"github.com/agentstation/signlib/internal/cmd/output"
	"github.com/agentstation/signlib/internal/cmd/table"
	"github.com/agentstation/signlib/internal/deps"
	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/errors"
)

// NewCommand creates the play command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [id]",
		Short: "Play a video with an external player",
		Long: `Play hands a video to the first media player found in PATH
(mpv, ffplay, vlc, or the system default opener).

Use --output to write the video bytes to a file, or "-" for stdout,
instead of launching a player. Use --check to list the players found.

Folder videos play only while their folder is linked in the running
process. Pass --link with the folder to link it again first; an id from
an earlier link is mapped to the record now holding the same file.`,
		Example: `  signlib play v_1718000000000
  signlib play v_1718000000000 --player vlc
  signlib play v_1718000000000 --output clip.mp4
  signlib play fl_1718000000000_0 --link ~/Videos/signs
  signlib play --check`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completion.VideoIDs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmdutil.MustGetBool(cmd, "check") {
				return checkPlayers(cmd, app)
			}
			if len(args) != 1 {
				return errors.NewValidationError("id", "", "a video id is required")
			}
			return run(cmd, app, args[0])
		},
	}

	cmd.Flags().String("player", "", "Player to use: mpv, ffplay, vlc, open")
	cmd.Flags().String("output", "", `Write the video to this file ("-" for stdout) instead of playing it`)
	cmd.Flags().Bool("check", false, "List the available players")
	cmd.Flags().String("link", "", "Link this folder before playing")
	_ = cmd.MarkFlagDirname("link")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, id string) error {
	ctx := cmdutil.Context(cmd, app)
	lib, err := cmdutil.Library(ctx, app)
	if err != nil {
		return err
	}

	if dir := cmdutil.MustGetString(cmd, "link"); dir != "" {
		if id, err = relink(ctx, lib, dir, id); err != nil {
			return err
		}
	}

	p, err := lib.Resolve(ctx, id)
	if err != nil {
		return err
	}
	if p.Empty() {
		if p.Video.IsFolder() {
			return errors.NewResourceError("play", "video", id, errors.New(constants.MsgRelinkFolder))
		}
		return errors.NewResourceError("play", "video", id, errors.New("no file attached"))
	}

	if dst := cmdutil.MustGetString(cmd, "output"); dst != "" {
		return writeTo(cmd, p, dst)
	}

	launch, cleanup, err := Launcher(cmdutil.MustGetString(cmd, "player"))(ctx, p)
	if err != nil {
		return err
	}
	defer cleanup()

	launch.Stdout = cmd.OutOrStdout()
	launch.Stderr = cmd.ErrOrStderr()
	app.Logger().Debug().Str("video_id", id).Str("player", launch.Path).Msg("Launching player")
	if err := launch.Run(); err != nil {
		return errors.WrapResource("run", "player", launch.Path, err)
	}
	return nil
}

// relink links dir and returns the id of the record that now holds the
// file of id. Non-folder ids are returned unchanged.
func relink(ctx context.Context, lib *signlib.Library, dir, id string) (string, error) {
	var fileName string
	if v, err := lib.Video(id); err == nil && v.IsFolder() {
		fileName = v.FileName
	}
	res, err := cmdutil.LinkFolder(ctx, lib, dir)
	if err != nil {
		return "", err
	}
	for _, v := range res.Videos {
		if fileName != "" && v.FileName == fileName {
			return v.ID, nil
		}
	}
	return id, nil
}

func writeTo(cmd *cobra.Command, p signlib.Playback, dst string) error {
	rc, err := p.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	var w io.Writer = cmd.OutOrStdout()
	if dst != "-" {
		f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
		if err != nil {
			return errors.WrapIO("create", dst, err)
		}
		defer f.Close()
		w = f
	}
	if _, err := io.Copy(w, rc); err != nil {
		return errors.WrapIO("write", dst, err)
	}
	return nil
}

// PlayerStatus is one row of --check.
type PlayerStatus struct {
	Name      string `json:"name" yaml:"name"`
	Available bool   `json:"available" yaml:"available"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
}

func checkPlayers(cmd *cobra.Command, app appcontext.Interface) error {
	results := deps.CheckAll(cmd.Context(), true)
	rows := make([]PlayerStatus, 0, len(results))
	for name, st := range results {
		rows = append(rows, PlayerStatus{Name: name, Available: st.Available, Path: st.Path, Version: st.Version})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	format := cmdutil.Format(app)
	if !format.IsTable() {
		return output.FormatAny(cmd.OutOrStdout(), format, rows)
	}
	data := table.Data{Headers: []string{"Player", "Status", "Path", "Version"}}
	for _, r := range rows {
		status := emoji.Error + " missing"
		if r.Available {
			status = emoji.Success + " found"
		}
		data.Rows = append(data.Rows, []string{r.Name, status, r.Path, r.Version})
	}
	return output.FormatAny(cmd.OutOrStdout(), format, data)
}

// Launcher returns a function that builds the player process for a
// playback. Embedded videos are written to a temporary file first; the
// returned cleanup removes it.
func Launcher(preferred string) func(ctx context.Context, p signlib.Playback) (*exec.Cmd, func(), error) {
	return func(ctx context.Context, p signlib.Playback) (*exec.Cmd, func(), error) {
		player, st, err := deps.Find(ctx, preferred)
		if err != nil {
			return nil, nil, err
		}
		path, cleanup, err := Materialize(p)
		if err != nil {
			return nil, nil, err
		}
		return deps.Command(ctx, player, st, path), cleanup, nil
	}
}

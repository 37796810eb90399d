package metadir

import (
	"fmt"
	"os"
	"sort"

	"github.com/arthur-debert/metadir/internal/version"
	"github.com/arthur-debert/metadir/pkg/errors"
	"github.com/arthur-debert/metadir/pkg/ids"
	"github.com/arthur-debert/metadir/pkg/repo"
	"github.com/arthur-debert/metadir/pkg/sandbox"
	"github.com/arthur-debert/metadir/pkg/trash"
	"github.com/arthur-debert/metadir/pkg/types"
	"github.com/arthur-debert/metadir/pkg/ui/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "info",
		Short:   MsgInfoShort,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(func(r *repo.Repo) error {
				return a.render(cmd, r.Config())
			})
		},
	}
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(func(r *repo.Repo) error {
				dirInfo, err := r.Init(a.cwd)
				if err != nil {
					return err
				}
				if dirInfo == nil {
					return errors.Newf(errors.ErrInvalidInput, MsgErrAlreadyInRepo, a.cwd)
				}
				return a.render(cmd, dirInfo)
			})
		},
	}
}

func newLinkCmd(a *app) *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:     "ln",
		Short:   MsgLinkShort,
		Example: MsgLinkExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(func(r *repo.Repo) error {
				link, err := r.ReadLink(a.cwd)
				if err != nil {
					return err
				}
				if link != nil {
					return errors.Newf(errors.ErrInvalidInput, MsgErrLinkExists, link.LinkID(), a.cwd)
				}

				var metaID ids.MetaID
				if ref != "" {
					if metaID, err = ids.ParseMetaID(ref); err != nil {
						return fmt.Errorf(MsgErrInvalidMetaID, ref, err)
					}
				} else {
					var ok bool
					metaID, ok, err = chooseMetaID(cmd, r, a.cwd)
					if err != nil {
						return err
					}
					if !ok {
						return errors.New(errors.ErrInvalidInput, MsgAbortingLink)
					}
				}

				dirInfo, err := r.Link(metaID, a.cwd)
				if err != nil {
					return err
				}
				if dirInfo == nil {
					return errors.Newf(errors.ErrInvalidInput, MsgErrCouldNotLink, a.cwd)
				}
				return a.render(cmd, dirInfo)
			})
		},
	}

	cmd.Flags().StringVarP(&ref, "ref", "r", "", MsgFlagRef)

	return cmd
}

// chooseMetaID lists the metadirectories and asks the user to pick one
func chooseMetaID(cmd *cobra.Command, r *repo.Repo, projectDir string) (ids.MetaID, bool, error) {
	if !interactive(cmd.InOrStdin()) {
		return ids.MetaID{}, false, errors.New(errors.ErrInvalidInput, MsgErrRefRequired)
	}

	manifests, err := r.ListManifests()
	if err != nil {
		return ids.MetaID{}, false, err
	}
	if len(manifests) == 0 {
		return ids.MetaID{}, false, errors.New(errors.ErrNotFound, MsgErrNoMetadirs)
	}
	sortManifests(manifests)

	options := make([]string, len(manifests))
	for i := range manifests {
		options[i] = fmt.Sprintf(MsgMetadirOption, manifests[i].MetaID(), manifests[i].OriginalProjectDir())
	}

	idx, ok, err := dialog(cmd).Choose(fmt.Sprintf(MsgChooseMetadir, projectDir), options)
	if err != nil || !ok {
		return ids.MetaID{}, false, err
	}
	return manifests[idx].MetaID(), true, nil
}

func sortManifests(manifests []types.Manifest) {
	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].MetaID().String() < manifests[j].MetaID().String()
	})
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Short:   MsgListShort,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(func(r *repo.Repo) error {
				manifests, err := r.ListManifests()
				if err != nil {
					return err
				}
				sortManifests(manifests)

				links, err := r.ListLinks()
				if err != nil {
					return err
				}
				sort.Slice(links, func(i, j int) bool {
					return links[i].ProjectDir() < links[j].ProjectDir()
				})

				return a.render(cmd, &display.Listing{Manifests: manifests, Links: links})
			})
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Short:   MsgShowShort,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(func(r *repo.Repo) error {
				dirInfo, err := r.Get(a.cwd)
				if err != nil {
					return err
				}
				if dirInfo == nil {
					return errors.Newf(errors.ErrNotFound, MsgErrNoMetadir, a.cwd)
				}
				return a.render(cmd, dirInfo)
			})
		},
	}
}

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "find",
		Short:   MsgFindShort,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(func(r *repo.Repo) error {
				link, err := r.FindLink(a.cwd)
				if err != nil {
					return err
				}
				if link == nil {
					return errors.Newf(errors.ErrNotFound, MsgErrNoLinkFound, a.cwd)
				}

				dirInfo, err := r.Get(link.ProjectDir())
				if err != nil {
					return err
				}
				if dirInfo == nil {
					return errors.Newf(errors.ErrNotFound, MsgErrNoMetadir, link.ProjectDir())
				}
				return a.render(cmd, dirInfo)
			})
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm",
		Short:   MsgRemoveShort,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(func(r *repo.Repo) error {
				removed, err := r.Remove(a.cwd)
				if err != nil {
					return err
				}
				if !removed {
					return errors.Newf(errors.ErrNotFound, MsgErrNoMetadir, a.cwd)
				}
				return a.message(cmd, fmt.Sprintf(MsgRemoved, a.cwd))
			})
		},
	}
}

func newTrashCmd(a *app) *cobra.Command {
	var clean, force bool

	cmd := &cobra.Command{
		Use:     "trash",
		Short:   MsgTrashShort,
		Long:    MsgTrashLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(func(r *repo.Repo) error {
				t, err := trash.Compute(r)
				if err != nil {
					return err
				}
				if t.IsEmpty() {
					return a.message(cmd, MsgNoCleanUp)
				}
				if err := a.render(cmd, t); err != nil {
					return err
				}
				if !clean {
					return nil
				}

				if !force {
					ok, err := confirm(cmd, MsgConfirmClean)
					if err != nil {
						return err
					}
					if !ok {
						return errors.New(errors.ErrInvalidInput, MsgAbortingCleanUp)
					}
				}

				invalid, unreferenced := len(t.InvalidLinks), len(t.UnreferencedManifests)
				if err := t.Empty(r); err != nil {
					return err
				}
				log.Info().
					Int("links", invalid).
					Int("manifests", unreferenced).
					Msg("Emptied trash")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clean, "clean", false, MsgFlagClean)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)

	return cmd
}

// confirm asks a yes/no question, refusing when nobody can answer
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if !interactive(cmd.InOrStdin()) {
		return false, errors.New(errors.ErrInvalidInput, MsgForceRequired)
	}
	return dialog(cmd).Confirm(prompt)
}

func newPurgeCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "purge",
		Short:   MsgPurgeShort,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !interactive(cmd.InOrStdin()) {
				return errors.New(errors.ErrInvalidInput, MsgAbortingPurge)
			}

			return a.withRepo(func(r *repo.Repo) error {
				if !force {
					ok, err := confirmPurge(cmd, r)
					if err != nil {
						return err
					}
					if !ok {
						return errors.New(errors.ErrInvalidInput, MsgAbortingPurge)
					}
				}

				if err := r.Purge(); err != nil {
					return err
				}
				return a.message(cmd, fmt.Sprintf(MsgPurged, a.settings.BaseDir))
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, MsgFlagPurgeForce)

	return cmd
}

// confirmPurge lists everything a purge deletes and asks for approval
func confirmPurge(cmd *cobra.Command, r *repo.Repo) (bool, error) {
	responses, err := dialog(cmd).PresentConfirmations([]types.ConfirmationRequest{{
		ID:          "purge",
		Title:       MsgConfirmPurge,
		Description: MsgPurgeDescription,
		Items:       []string{r.LinksDir(), r.ContainerDir(), r.SharedDir(), r.ConfigPath(), r.LockPath()},
	}})
	if err != nil {
		return false, err
	}
	return len(responses) == 1 && responses[0].Approved, nil
}

func newReadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "read PATH",
		Short:   MsgReadShort,
		Args:    cobra.ExactArgs(1),
		GroupID: "shared",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := sandbox.SharedPath(args[0])
			return a.withRepo(func(r *repo.Repo) error {
				value, ok, err := r.ReadSharedFile(p)
				if err != nil {
					return err
				}
				if !ok {
					return errors.Newf(errors.ErrNotFound, MsgErrSharedNotFound, p)
				}
				return a.message(cmd, value)
			})
		},
	}
}

func newWriteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "write PATH VALUE",
		Short:   MsgWriteShort,
		Args:    cobra.ExactArgs(2),
		GroupID: "shared",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(func(r *repo.Repo) error {
				return r.WriteSharedFile(sandbox.SharedPath(args[0]), args[1])
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat+"\n", version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return errors.Other(err, "failed to create %s", outDir)
			}
			header := &doc.GenManHeader{
				Title:   "METADIR",
				Section: "1",
				Source:  "metadir " + version.Version,
				Manual:  "metadir manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, outDir); err != nil {
				return err
			}
			return a.message(cmd, fmt.Sprintf(MsgManWritten, outDir))
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", ".", MsgFlagManDir)

	return cmd
}

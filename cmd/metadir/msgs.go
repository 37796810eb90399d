package metadir

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Keep per-project data outside project directories"
	MsgInfoShort       = "Show configuration"
	MsgInitShort       = "Initialize metadirectory"
	MsgLinkShort       = "Create link to existing metadirectory"
	MsgListShort       = "Show all metadirectory info"
	MsgShowShort       = "Show metadirectory info"
	MsgFindShort       = "Find parent metadirectory"
	MsgRemoveShort     = "Unlink metadirectory"
	MsgTrashShort      = "Show trash and optionally clean up"
	MsgPurgeShort      = "Purge repository"
	MsgReadShort       = "Read string from shared file"
	MsgWriteShort      = "Save string to shared file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Flag descriptions
	MsgFlagDir          = "Path to repository directory"
	MsgFlagPrefix       = "Prefix for repository file names"
	MsgFlagRecordFormat = "Record format for new repositories (yaml, toml)"
	MsgFlagOutput       = "Output format (auto, term, text, json)"
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNoColor      = "Disable styled output"
	MsgFlagRef          = "Existing metadirectory ID"
	MsgFlagClean        = "Clean up"
	MsgFlagForce        = "Skip the confirmation prompt"
	MsgFlagPurgeForce   = "Really purge repository"
	MsgFlagManDir       = "Directory to write man pages to"

	// Status messages
	MsgRepoBusy         = "Repository at %s is currently in use by another program or lock file is invalid"
	MsgNoCleanUp        = "No clean-up required"
	MsgRemoved          = "Removed link for directory %s. Run 'metadir trash --clean' to delete metadirectories no longer in use."
	MsgPurged           = "Purged repository at %s"
	MsgManWritten       = "Wrote man pages to %s"
	MsgChooseMetadir    = "Choose a metadirectory to link %s to:"
	MsgConfirmClean     = "Delete them?"
	MsgConfirmPurge     = "The following will be deleted:"
	MsgPurgeDescription = "This will delete all of your metadirectories."
	MsgVersionFormat    = "metadir version %s\n  commit: %s\n  built:  %s"
	MsgMetadirOption    = "%s: %s"
	MsgAbortingCleanUp  = "Aborting clean-up"
	MsgAbortingLink     = "No metadirectory selected"
	MsgAbortingPurge    = "This operation will delete all of your metadirectories: pass --force if you're sure what you're doing"
	MsgForceRequired    = "refusing to delete without confirmation: pass --force when not running interactively"

	// Error messages
	MsgErrAlreadyInRepo  = "directory %s is already in repository"
	MsgErrNoMetadir      = "no metadirectory found for directory %s"
	MsgErrNoLinkFound    = "could not find link for directory %s"
	MsgErrLinkExists     = "link %s already exists for directory %s"
	MsgErrCouldNotLink   = "could not create link for directory %s"
	MsgErrNoMetadirs     = "no metadirectories exist yet"
	MsgErrRefRequired    = "no metadirectory given: pass --ref when not running interactively"
	MsgErrSharedNotFound = "shared file %s not found"
	MsgErrInvalidMetaID  = "invalid metadirectory ID %q: %w"
	MsgErrCurrentDir     = "failed to get current directory: %w"
	MsgErrOutputFormat   = "invalid output format: %w"
	MsgErrNoCommand      = "no command specified"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/ln-example.txt
	msgLinkExampleRaw string
	MsgLinkExample    = strings.TrimSpace(msgLinkExampleRaw)

	//go:embed msgs/trash-long.txt
	msgTrashLongRaw string
	MsgTrashLong    = strings.TrimSpace(msgTrashLongRaw)
)

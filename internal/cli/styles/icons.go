package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconGlobe     = "" //  browser/web
	IconVersion   = "" //  tag
	IconGitBranch = "" //  git branch
	IconCalendar  = "" //  calendar
	IconGithub    = "" //  github
	IconGo        = "" //  go gopher

	// Status / diagnostics
	IconCheck   = "" // check
	IconX       = "" // x
	IconWarning = "" // warning
	IconInfo    = "" // info
	IconLock    = "" // padlock (https)
	IconUnlock  = "" // open padlock (http)
	IconMute    = "" // muted speaker
	IconPin     = "" // pinned tab

	// Purge / filesystem
	IconTrash    = "" // trash
	IconConfig   = "" // config
	IconDatabase = "" // database
	IconLogs     = "" // file-text

	// UI
	IconCursor = "" // chevron-right
	IconSearch = "" // magnifier
)

package constants

const (
	AppName            = "habitkit"
	DefaultKeyringUser = "database-connection"
	DefaultDataPath    = "~/.config/habitkit"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Document keys
	DocHabits     = "habits"
	DocCategories = "categories"
	DocSettings   = "settings"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitkit-"
	BackupFileSuffix = ".json"
	ExportFileName   = "habit_tracker_export.json"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifierLockfileName   = "habitkit-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.habitkit"

	// Habit defaults
	DefaultHabitIcon      = "star.fill"
	DefaultHabitColor     = "#5B8DEF"
	DefaultTargetCount    = 1
	FallbackCategoryName  = "Uncategorized"
	FallbackCategoryIcon  = "tray.fill"
	FallbackCategoryColor = "#9CA3AF"

	// Analytics defaults
	DefaultTopStreakLimit = 5
	DefaultHistoryDays    = 14
	DefaultGridWeeks      = 12

	// Settings keys
	SettingUserName = "user_name"
	SettingTimezone = "timezone"

	// Default settings values
	DefaultUserName = "Habit Master"
	DefaultTimezone = "Local" // Use system local timezone by default
)

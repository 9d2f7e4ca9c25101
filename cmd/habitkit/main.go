package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/cli/backups"
	"github.com/julianstephens/habitkit/internal/cli/categories"
	"github.com/julianstephens/habitkit/internal/cli/habits"
	"github.com/julianstephens/habitkit/internal/cli/settings"
	"github.com/julianstephens/habitkit/internal/cli/stats"
	"github.com/julianstephens/habitkit/internal/cli/system"
	"github.com/julianstephens/habitkit/internal/constants"
	apperrors "github.com/julianstephens/habitkit/internal/errors"
	"github.com/julianstephens/habitkit/internal/keyring"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/storage"
)

// keyringTarget in --data selects the connection string stored in the OS keyring.
const keyringTarget = "keyring"

var CLI struct {
	Version  kong.VersionFlag
	Data     string `help:"Data directory, SQLite file (.db) or PostgreSQL connection string without a password. Use 'keyring' for the stored connection string." env:"HABITKIT_DATA" default:"${data_path}"`
	Debug    bool   `help:"Write debug logs to stderr." env:"HABITKIT_DEBUG"`
	LogLevel string `help:"Log level (debug, info, warn, error)." env:"HABITKIT_LOG_LEVEL"`

	Init         system.InitCmd         `cmd:"" help:"Initialize habitkit storage."`
	Doctor       system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Tui          system.TuiCmd          `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit        habits.HabitCmd        `cmd:"" help:"Manage habits and completions."`
	Category     categories.CategoryCmd `cmd:"" help:"Manage categories."`
	Stats        stats.StatsCmd         `cmd:"" help:"Show habit statistics."`
	Achievements stats.AchievementsCmd  `cmd:"" help:"Show achievements."`
	Level        stats.LevelCmd         `cmd:"" help:"Show your level."`
	Export       backups.ExportCmd      `cmd:"" help:"Export habits and categories to a JSON file."`
	Import       backups.ImportCmd      `cmd:"" help:"Replace habits and categories from an export file."`
	Backup       struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`
	Remind   system.RemindCmd     `cmd:"" help:"Send due habit reminders to the tray app."`
	Config   system.ConfigCmd     `cmd:"" help:"Manage the stored database connection."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track daily habits, streaks and achievements"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"data_path":      constants.DefaultDataPath,
			"habit_color":    constants.DefaultHabitColor,
			"habit_icon":     constants.DefaultHabitIcon,
			"category_color": constants.FallbackCategoryColor,
			"category_icon":  constants.FallbackCategoryIcon,
			"history_days":   strconv.Itoa(constants.DefaultHistoryDays),
			"export_file":    constants.ExportFileName,
		},
	)

	provider, dataDir, err := openProvider(CLI.Data)
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, Level: CLI.LogLevel, DataDir: dataDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Starting habitkit", "command", ctx.Command(), "storage", provider.GetConfigPath())

	appCtx := cli.NewContext(provider, dataDir)
	err = ctx.Run(appCtx)
	if closeErr := appCtx.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	apperrors.Fatal(err)
}

// openProvider picks the storage backend for target and the directory that
// holds backups and logs next to it.
func openProvider(target string) (storage.Provider, string, error) {
	if target == keyringTarget {
		connStr, err := keyring.ConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, "", errors.New("no connection string in keyring, store one with 'habitkit config set-connection'")
			}
			return nil, "", err
		}
		target = connStr
	}

	provider := storage.Open(target)
	switch p := provider.(type) {
	case *storage.FileStore:
		return p, p.GetConfigPath(), nil
	case *storage.SQLiteStore:
		return p, filepath.Dir(p.GetConfigPath()), nil
	default:
		return provider, storage.ExpandHome(constants.DefaultDataPath), nil
	}
}

package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
	"github.com/julianstephens/habitkit/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsStorage checks are skipped when storage is unreachable
	needsStorage bool
	// warnOnly failures do not fail the command
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Storage reachable", run: checkStorageReachable},
	{name: "Schema version", needsStorage: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsStorage: true, run: checkMigrationsComplete},
	{name: "Documents readable", needsStorage: true, run: checkDocuments},
	{name: "Habit integrity", needsStorage: true, run: checkHabitIntegrity},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	reachable := true
	for _, c := range checks {
		if c.needsStorage && !reachable {
			fmt.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Storage reachable" {
				reachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Provider.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	if sp, ok := ctx.Provider.(storage.SchemaProvider); ok {
		if err := sp.Ping(); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sp, ok := ctx.Provider.(storage.SchemaProvider)
	if !ok {
		// document files carry no schema version
		return nil
	}
	runner, err := sp.MigrationRunner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	sp, ok := ctx.Provider.(storage.SchemaProvider)
	if !ok {
		return nil
	}
	runner, err := sp.MigrationRunner()
	if err != nil {
		return err
	}
	current, err := runner.CurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.LatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

// checkDocuments decodes each stored document directly; the store itself
// would silently fall back to defaults.
func checkDocuments(ctx *cli.Context) error {
	decoders := []struct {
		key    string
		decode func([]byte) error
	}{
		{constants.DocHabits, func(b []byte) error { _, err := storage.DecodeHabits(b); return err }},
		{constants.DocCategories, func(b []byte) error { _, err := storage.DecodeCategories(b); return err }},
		{constants.DocSettings, func(b []byte) error { _, err := storage.DecodeSettings(b); return err }},
	}
	for _, d := range decoders {
		data, ok, err := ctx.Provider.Load(d.key)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", d.key, err)
		}
		if !ok {
			continue
		}
		if err := d.decode(data); err != nil {
			return fmt.Errorf("%s document is unreadable: %w", d.key, err)
		}
	}
	return nil
}

func checkHabitIntegrity(ctx *cli.Context) error {
	s := ctx.Store()
	ids := make(map[string]bool)
	dangling := 0
	for _, h := range s.Habits() {
		if ids[h.ID] {
			return fmt.Errorf("duplicate habit ID found: %s", h.ID)
		}
		ids[h.ID] = true
		if _, ok := s.CategoryFor(h); !ok {
			dangling++
		}
		if h.Frequency == models.FrequencyCustom && len(h.CustomDays) == 0 {
			return fmt.Errorf("habit %q has a custom schedule with no days", h.Title)
		}
		if dup := duplicateDay(h.CompletedDates, s.Now().Location()); dup != "" {
			return fmt.Errorf("habit %q has duplicate completions on %s", h.Title, dup)
		}
	}
	if dangling > 0 {
		return fmt.Errorf("found %d habits referencing missing categories", dangling)
	}
	return nil
}

func duplicateDay(dates []time.Time, loc *time.Location) string {
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		key := d.In(loc).Format(constants.DateFormat)
		if seen[key] {
			return key
		}
		seen[key] = true
	}
	return ""
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.Backups().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'habitkit backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	tz := ctx.Store().Settings().Timezone
	if !utils.ValidateTimezone(tz) {
		return fmt.Errorf("configured timezone %q cannot be loaded", tz)
	}
	return nil
}

package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/storage"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Store().Export()
	if err != nil {
		return err
	}
	backupPath, err := ctx.Backups().CreateBackup(data)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Backups()
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		fmt.Printf("  %s  %s  (%.1f KB)\n", timestamp, filepath.Base(b.Path), sizeKB)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Backups()
	backupPath := mgr.Resolve(c.BackupFile)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file not found: %s", backupPath)
	}

	if !c.Yes {
		fmt.Println("⚠️  WARNING: This will replace your current habits and categories with the backup.")
		fmt.Println("A backup of your current data will be created before restoring.")
		fmt.Printf("\nRestore from: %s\n", filepath.Base(backupPath))
		if !cli.Confirm("Continue?") {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	s := ctx.Store()
	current, err := s.Export()
	if err != nil {
		return err
	}
	bundle, err := mgr.RestoreBackup(backupPath, current)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	s.Import(bundle)

	fmt.Printf("✓ Restored %d habits and %d categories\n", len(bundle.Habits), len(bundle.Categories))
	return nil
}

type ExportCmd struct {
	Out string `short:"o" help:"Output file (default: ${export_file} in the current directory)." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Store().Export()
	if err != nil {
		return err
	}
	out := c.Out
	if out == "" {
		out = constants.ExportFileName
	}
	if err := os.WriteFile(out, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("✓ Exported to %s\n", out)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Export file to import." type:"existingfile"`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	bundle, err := storage.DecodeBundle(data)
	if err != nil {
		return fmt.Errorf("import file is invalid: %w", err)
	}
	if !c.Yes && !cli.Confirm(fmt.Sprintf("Replace current data with %d habits from %s?", len(bundle.Habits), filepath.Base(c.File))) {
		fmt.Println("Import cancelled.")
		return nil
	}

	// keep a restorable copy of what is about to be replaced
	ctx.PerformAutomaticBackup()
	ctx.Store().Import(bundle)
	fmt.Printf("✓ Imported %d habits and %d categories\n", len(bundle.Habits), len(bundle.Categories))
	return nil
}

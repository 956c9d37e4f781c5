package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio/adapters/backup_storage"
	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/adapters/persistence/migrations"
	"github.com/khoahotran/portfolio/internal/application/service"
	backupUC "github.com/khoahotran/portfolio/internal/application/usecase/backup"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the Postgres schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		pool, err := persistence.NewPostgresPool(cfg, log)
		if err != nil {
			return err
		}
		defer pool.Close()

		version, err := migrations.Up(pool)
		if err != nil {
			return fmt.Errorf("migrating: %w", err)
		}
		fmt.Printf("Schema at version %d\n", version)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the default profile and social links where none are stored",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(cmd.Context()); err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		seeded, err := a.store.Seed(cmd.Context())
		if err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
		if len(seeded) == 0 {
			fmt.Println("Nothing to seed.")
			return nil
		}
		fmt.Printf("Seeded: %s\n", strings.Join(seeded, ", "))
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot all content",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		sink, key, err := pickSink(cmd, a, out)
		if err != nil {
			return err
		}
		res, err := backupUC.NewBackupUseCase(a.store, sink, a.logger).ExecuteAs(cmd.Context(), key)
		if err != nil {
			return fmt.Errorf("backing up: %w", err)
		}
		fmt.Printf("Backup written to %s (%d events)\n", res.Location, res.Events)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Write a snapshot back into the content store",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("in")
		key, _ := cmd.Flags().GetString("key")
		if (in == "") == (key == "") {
			return fmt.Errorf("pass exactly one of --in or --key")
		}
		if err := requireLogin(cmd.Context()); err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		sink, k, err := pickSink(cmd, a, in)
		if err != nil {
			return err
		}
		if key != "" {
			k = key
		}
		snap, err := backupUC.NewRestoreUseCase(a.store, sink, a.logger).Execute(cmd.Context(), k)
		if err != nil {
			return fmt.Errorf("restoring: %w", err)
		}
		fmt.Printf("Restored snapshot taken %s (%d events)\n", snap.TakenAt.Format("2006-01-02 15:04:05"), len(snap.Events))
		return nil
	},
}

// pickSink uses a local file when path is set and the configured backup
// storage otherwise.
func pickSink(cmd *cobra.Command, a *app, path string) (service.BackupSink, string, error) {
	if path != "" {
		sink, err := backup_storage.NewFileSink(filepath.Dir(path))
		return sink, filepath.Base(path), err
	}
	sink, err := backup_storage.NewSinkFromConfig(cmd.Context(), a.cfg, a.logger)
	if err != nil {
		return nil, "", err
	}
	if sink == nil {
		return nil, "", fmt.Errorf("no backup storage configured, set backup.s3_bucket or backup.dir")
	}
	return sink, "", nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Unlock admin commands on this device",
	RunE: func(cmd *cobra.Command, args []string) error {
		gate, flags, err := newLocalGate()
		if err != nil {
			return err
		}
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			fmt.Fprint(os.Stderr, "Admin secret: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("reading secret: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}
		if !gate.Login(cmd.Context(), flags, password) {
			return fmt.Errorf("incorrect password")
		}
		fmt.Println("Logged in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Lock admin commands on this device",
	RunE: func(cmd *cobra.Command, args []string) error {
		gate, flags, err := newLocalGate()
		if err != nil {
			return err
		}
		gate.Logout(cmd.Context(), flags)
		fmt.Println("Logged out.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether this device is logged in",
	RunE: func(cmd *cobra.Command, args []string) error {
		gate, flags, err := newLocalGate()
		if err != nil {
			return err
		}
		if gate.IsAuthenticated(cmd.Context(), flags) {
			fmt.Println("Logged in.")
		} else {
			fmt.Println("Logged out.")
		}
		return nil
	},
}

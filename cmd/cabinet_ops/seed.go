package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSeedCmd(a *app) *cobra.Command {
	var (
		rulesFile string
		skipAdmin bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the rules file and the admin account",
		Long: `seed upserts every rule of the rules file by name and, unless --skip-admin
is given, creates or refreshes the ADMIN_EMAIL account with ADMIN_PASSWORD.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rulesFile == "" {
				rulesFile = a.cfg.RulesFile
			}
			file, err := loadRuleSeedFile(rulesFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			svc, closePool, err := a.openServices(ctx)
			if err != nil {
				return err
			}
			defer closePool()

			count, err := svc.Rule.SeedRules(ctx, file)
			if err != nil {
				return fmt.Errorf("seed rules: %w", err)
			}
			a.logger.Info("Rules seeded", slog.String("file", rulesFile), slog.Int("count", count))

			if skipAdmin {
				return nil
			}
			if a.cfg.AdminEmail == "" || a.cfg.AdminPassword == "" {
				a.logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, admin account not seeded")
				return nil
			}
			if _, err := svc.User.EnsureAdmin(ctx, a.cfg.AdminEmail, a.cfg.AdminPassword); err != nil {
				return fmt.Errorf("ensure admin: %w", err)
			}
			a.logger.Info("Admin user ensured", slog.String("email", a.cfg.AdminEmail))
			return nil
		},
	}
	cmd.Flags().StringVar(&rulesFile, "rules", "", "rules YAML file (defaults to RULES_FILE)")
	cmd.Flags().BoolVar(&skipAdmin, "skip-admin", false, "do not create or refresh the admin account")
	return cmd
}

// loadRuleSeedFile reads and decodes a rules file. Unknown keys are rejected.
func loadRuleSeedFile(path string) (dto.RuleSeedFile, error) {
	var file dto.RuleSeedFile

	f, err := os.Open(path)
	if err != nil {
		return file, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return file, fmt.Errorf("decode rules file %s: %w", path, err)
	}
	return file, nil
}

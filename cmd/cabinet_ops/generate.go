package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portssvc "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/services"
	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
	"github.com/spf13/cobra"
)

// periodFlags are the --month and --year flags shared by the generators.
type periodFlags struct {
	month string
	year  string
}

func (p *periodFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.month, "month", "", "month 1-12 (defaults to the current month)")
	cmd.Flags().StringVar(&p.year, "year", "", "year (defaults to the current year)")
}

// resolve parses the flags, falling back to the month of now when both are empty.
func (p *periodFlags) resolve(now time.Time) (domain.Period, error) {
	if p.month == "" && p.year == "" {
		return domain.PeriodOf(now), nil
	}
	return domain.ParsePeriod(p.month, p.year)
}

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run a task generator",
	}
	cmd.AddCommand(
		newGenerateFrequencyCmd(a),
		newGenerateWithRulesCmd(a),
		newGenerateFixedCmd(a),
		newGenerateConditionalCmd(a),
	)
	return cmd
}

func newGenerateFrequencyCmd(a *app) *cobra.Command {
	var (
		frequency    string
		period       periodFlags
		skipExisting bool
	)
	cmd := &cobra.Command{
		Use:   "frequency",
		Short: "Create one task per active rule of a frequency and matching client",
		RunE: func(cmd *cobra.Command, args []string) error {
			freq := domain.Frequency(frequency)
			if !freq.IsValid() {
				return fmt.Errorf("invalid frequency %q: must be MONTHLY or QUARTERLY", frequency)
			}
			var p *domain.Period
			if period.month != "" || period.year != "" {
				parsed, err := domain.ParsePeriod(period.month, period.year)
				if err != nil {
					return err
				}
				p = &parsed
			}
			return a.runGeneration(cmd, "frequency", func(gs portssvc.TaskGenerationSvc) (*domain.GenerationReport, error) {
				return gs.GenerateByFrequency(cmd.Context(), freq, p, portssvc.GenerationOptions{SkipExisting: skipExisting})
			})
		},
	}
	cmd.Flags().StringVar(&frequency, "frequency", string(domain.FrequencyMonthly), "MONTHLY or QUARTERLY")
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "skip tasks that already exist")
	period.register(cmd)
	return cmd
}

func newGenerateWithRulesCmd(a *app) *cobra.Command {
	var (
		period       periodFlags
		skipExisting bool
	)
	cmd := &cobra.Command{
		Use:   "with-rules",
		Short: "Create the declaration tasks noting every applicable rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := period.resolve(time.Now())
			if err != nil {
				return err
			}
			return a.runGeneration(cmd, "with_rules", func(gs portssvc.TaskGenerationSvc) (*domain.GenerationReport, error) {
				return gs.GenerateWithRules(cmd.Context(), p, portssvc.GenerationOptions{SkipExisting: skipExisting})
			})
		},
	}
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "skip tasks that already exist")
	period.register(cmd)
	return cmd
}

func newGenerateFixedCmd(a *app) *cobra.Command {
	var (
		period       periodFlags
		skipExisting bool
	)
	cmd := &cobra.Command{
		Use:   "fixed",
		Short: "Create the monthly document tasks for every client",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := period.resolve(time.Now())
			if err != nil {
				return err
			}
			return a.runGeneration(cmd, "fixed_titles", func(gs portssvc.TaskGenerationSvc) (*domain.GenerationReport, error) {
				return gs.GenerateFixedTitles(cmd.Context(), p, portssvc.GenerationOptions{SkipExisting: skipExisting})
			})
		},
	}
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "skip tasks that already exist")
	period.register(cmd)
	return cmd
}

func newGenerateConditionalCmd(a *app) *cobra.Command {
	var (
		clientID string
		note     string
		period   periodFlags
	)
	cmd := &cobra.Command{
		Use:   "conditional",
		Short: "Append a note to a client's declaration tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(clientID, 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid client id %q", clientID)
			}
			p, err := period.resolve(time.Now())
			if err != nil {
				return err
			}

			svc, closePool, err := a.openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closePool()

			report, err := svc.Generation.GenerateConditionalNotes(cmd.Context(), id, p, note)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dto.ToConditionalNotesResponse(report))
		},
	}
	cmd.Flags().StringVar(&clientID, "client-id", "", "client ID")
	cmd.Flags().StringVar(&note, "note", domain.DefaultConditionalNote, "note to append")
	period.register(cmd)
	_ = cmd.MarkFlagRequired("client-id")
	return cmd
}

func (a *app) runGeneration(cmd *cobra.Command, generator string, run func(portssvc.TaskGenerationSvc) (*domain.GenerationReport, error)) error {
	svc, closePool, err := a.openServices(cmd.Context())
	if err != nil {
		return err
	}
	defer closePool()

	report, err := run(svc.Generation)
	if err != nil {
		return err
	}
	a.logger.Info("Generation completed",
		slog.String("generator", generator),
		slog.Int("created", len(report.Tasks)),
		slog.Int("skipped", report.Skipped))
	return writeJSON(cmd.OutOrStdout(), dto.ToGenerationResponse(report))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-calendar/internal/config"
	"github.com/kozaktomas/photo-calendar/internal/project"
	"github.com/kozaktomas/photo-calendar/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new calendar project",
	Long: `Create a new calendar project with default settings in the data
directory: 12 months starting in January of the current year, Letter
portrait, single photo above the grid.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Int("year", 0, "Start year (defaults to the current year)")
	initCmd.Flags().Bool("holidays", false, "Enable US federal holiday events")
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	st, err := store.New(cfg.Storage.DataDir)
	if err != nil {
		return err
	}

	p := project.New()
	if year, err := cmd.Flags().GetInt("year"); err == nil && year > 0 {
		p.Calendar.StartYear = year
	}
	if holidays, err := cmd.Flags().GetBool("holidays"); err == nil && holidays {
		p.Calendar.ShowHolidays = true
	}
	p.SyncHolidayEvents()

	if err := st.SaveProject(p); err != nil {
		return err
	}

	fmt.Printf("Created project %s in %s\n", p.ID, cfg.Storage.DataDir)
	fmt.Printf("  Start: %d-%02d, %d months\n", p.Calendar.StartYear, p.Calendar.StartMonth+1, p.Calendar.Months)
	return nil
}

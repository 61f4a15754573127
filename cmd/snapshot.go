package cmd

import (
	"fmt"
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal"
	adminDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/admin"
	"github.com/Dhrumivyas20/placement-portal/internal/statistics"
	"github.com/spf13/cobra"
)

var (
	snapshotYear    int
	snapshotAverage float64
	snapshotHighest float64
)

// snapshotCmd records the yearly placement statistics row, the same write the admin API performs.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Record the placement statistics snapshot for a year",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return fmt.Errorf("failed to initialize dependencies: %w", err)
		}
		defer deps.Close()

		ctx := cmd.Context()
		var adminRow adminDatamodel.Admin
		if err := deps.Gorm.WithContext(ctx).Order("id").First(&adminRow).Error; err != nil {
			return fmt.Errorf("load admin: %w", err)
		}

		dto := statistics.SnapshotDTO{Year: snapshotYear}
		if cmd.Flags().Changed("average-salary") {
			dto.AverageSalary = &snapshotAverage
		}
		if cmd.Flags().Changed("highest-salary") {
			dto.HighestSalary = &snapshotHighest
		}

		snap, err := deps.Services.Statistics.Snapshot(ctx, &internal.Session{AccountID: adminRow.ID, Role: internal.RoleAdmin}, dto)
		if err != nil {
			return err
		}
		fmt.Printf("Recorded %d: %d students, %d placed, %d companies\n",
			snap.Year, snap.TotalStudents, snap.PlacedStudents, snap.CompanyParticipation)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().IntVar(&snapshotYear, "year", time.Now().Year(), "Placement year to record")
	snapshotCmd.Flags().Float64Var(&snapshotAverage, "average-salary", 0, "Average package offered")
	snapshotCmd.Flags().Float64Var(&snapshotHighest, "highest-salary", 0, "Highest package offered")
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <student-id>",
	Short: "Fetch a student's grades, attendance and participation in one shot",
	Long: `Fetch a student's grade, attendance and participation records
concurrently and print the derived figures. If any of the three fetches
fails nothing is shown; the figures are never computed from partial data.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if _, err := a.requireRole(roleParent); err != nil {
			return err
		}

		studentID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid student id %q", args[0])
		}

		summary, err := a.client.StudentSummary(cmd.Context(), studentID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		stats := summary.Stats
		fmt.Fprintf(out, "Student %d\n\n", studentID)
		if stats.TotalGrades > 0 {
			fmt.Fprintf(out, "  Average grade:  %.1f (%d grades)\n", stats.AverageGrade, stats.TotalGrades)
		} else {
			fmt.Fprintln(out, "  Average grade:  N/A (no grades yet)")
		}
		fmt.Fprintf(out, "  Attendance:     %.1f%% (%d records)\n", stats.AttendancePct, stats.TotalAttendance)
		if stats.TotalParticipations > 0 {
			fmt.Fprintf(out, "  Participation:  %.1f (%d records)\n", stats.ParticipationAvg, stats.TotalParticipations)
		} else {
			fmt.Fprintln(out, "  Participation:  N/A (no records yet)")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

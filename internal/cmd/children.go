package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var childrenCmd = &cobra.Command{
	Use:   "children",
	Short: "List your children and inspect their academic detail",
}

var childrenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your children with their headline figures",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if _, err := a.requireRole(roleParent); err != nil {
			return err
		}

		dashboard, err := a.client.ParentDashboard(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(dashboard.Children) == 0 {
			fmt.Fprintln(out, "No children are linked to this account.")
			return nil
		}

		fmt.Fprintf(out, "Period: %s\n\n", orDash(dashboard.CurrentPeriod))
		for _, child := range dashboard.Children {
			fmt.Fprintf(out, "  [%d] %s (%s)\n", child.ID, child.FullName, orDash(child.CourseName))
			fmt.Fprintf(out, "      Average: %s  Attendance: %s  Status: %s\n",
				floatOrNA(child.AverageGrade), pctOrNA(child.AttendancePct), orDash(child.AcademicStatus))
			if n := len(child.Alerts); n > 0 {
				fmt.Fprintf(out, "      Alerts: %d\n", n)
			}
		}
		fmt.Fprintln(out, "\nRun 'colegio children show <id>' for the full breakdown.")
		return nil
	},
}

var childrenShowCmd = &cobra.Command{
	Use:   "show <child-id>",
	Short: "Show one child's grades, attendance and prediction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if _, err := a.requireRole(roleParent); err != nil {
			return err
		}

		childID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid child id %q", args[0])
		}
		period, _ := cmd.Flags().GetString("period")

		detail, err := a.client.ChildDetail(cmd.Context(), childID, period)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", detail.FullName, orDash(detail.CourseName))
		if len(detail.AvailablePeriods) > 0 {
			fmt.Fprintf(out, "Periods: %s\n", strings.Join(detail.AvailablePeriods, ", "))
		}
		if s := detail.Stats; s != nil {
			fmt.Fprintln(out, "\nStats")
			fmt.Fprintf(out, "  Average:        %s (%d/%d subjects graded)\n",
				floatOrNA(s.AverageGrade), s.SubjectsWithGrade, s.TotalSubjects)
			fmt.Fprintf(out, "  Attendance:     %s (%d/%d days present)\n",
				pctOrNA(s.AttendancePct), s.DaysPresent, s.TotalDays)
			fmt.Fprintf(out, "  Participation:  %s\n", floatOrNA(s.ParticipationAvg))
		}
		if len(detail.Subjects) > 0 {
			fmt.Fprintln(out, "\nSubjects")
			for _, subject := range detail.Subjects {
				fmt.Fprintf(out, "  %-24s %s  %s\n", subject.Name, floatOrNA(subject.Average), trendLabel(subject.Trend))
			}
		}
		if p := detail.Prediction; p != nil {
			fmt.Fprintln(out, "\nPrediction")
			fmt.Fprintf(out, "  Expected grade: %s (%s)\n", floatOrNA(p.PredictedGrade), trendLabel(p.Trend))
			for _, rec := range p.Recommendations {
				fmt.Fprintf(out, "  - %s\n", rec)
			}
		}
		if nav := detail.Navigation; nav != nil && !nav.OnlyChild {
			names := make([]string, 0, len(nav.Siblings))
			for _, sib := range nav.Siblings {
				names = append(names, fmt.Sprintf("%s %s [%d]", sib.FirstName, sib.LastName, sib.ID))
			}
			fmt.Fprintf(out, "\nSiblings: %s\n", strings.Join(names, ", "))
		}
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func floatOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func pctOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64) + "%"
}

func trendLabel(trend string) string {
	switch trend {
	case "mejorando", "ascendente":
		return "improving"
	case "empeorando", "descendente":
		return "declining"
	case "":
		return "stable"
	default:
		return trend
	}
}

func init() {
	childrenShowCmd.Flags().String("period", "", "Academic period to show (defaults to the current one)")
	childrenCmd.AddCommand(childrenListCmd)
	childrenCmd.AddCommand(childrenShowCmd)
	rootCmd.AddCommand(childrenCmd)
}

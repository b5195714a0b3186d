package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/colegioapp/colegio/internal/config"
)

var adminURLCmd = &cobra.Command{
	Use:   "admin-url [section]",
	Short: "Print the backend admin panel URL, optionally for a section",
	Long: `Print the backend admin panel URL. With a section argument the
printed URL points straight at that section's change list.

Sections: students, teachers, courses, subjects, grades, attendance,
participations, parents, schools.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		base := strings.TrimSuffix(a.cfg.AdminURL, "/")
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), base+"/")
			return nil
		}

		section := strings.ToLower(args[0])
		path, ok := config.AdminSectionPath(section)
		if !ok {
			return fmt.Errorf("unknown admin section %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), base+path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adminURLCmd)
}

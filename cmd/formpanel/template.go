package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/FormPanel/internal/project"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Reuse castings between projects",
}

var templateSaveCmd = &cobra.Command{
	Use:   "save NAME PROJECT",
	Short: "Save a project's castings and settings as a template",
	Args:  cobra.ExactArgs(2),
	RunE:  runTemplateSave,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplateList,
}

var templateUseCmd = &cobra.Command{
	Use:   "use NAME PROJECT",
	Short: "Create a new project file from a template",
	Args:  cobra.ExactArgs(2),
	RunE:  runTemplateUse,
}

var (
	templateDescription string
	templateProjectName string
)

func init() {
	templateSaveCmd.Flags().StringVarP(&templateDescription, "description", "d", "", "Template description")
	templateUseCmd.Flags().StringVar(&templateProjectName, "name", "", "Name of the new project (default: template name)")

	templateCmd.AddCommand(templateSaveCmd, templateListCmd, templateUseCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateSave(cmd *cobra.Command, args []string) error {
	t, err := project.SaveTemplateFromProject(templatesPath(), args[0], templateDescription, args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved template %q (%d castings)\n", t.Name, len(t.Castings))
	return nil
}

func runTemplateList(cmd *cobra.Command, _ []string) error {
	store, err := project.LoadTemplates(templatesPath())
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(store.Templates) == 0 {
		fmt.Fprintln(out, "No templates saved.")
		return nil
	}
	for _, t := range store.Templates {
		fmt.Fprintf(out, "%-24s %d castings, primary %q", t.Name, len(t.Castings), t.PrimaryCasting)
		if t.Description != "" {
			fmt.Fprintf(out, " - %s", t.Description)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runTemplateUse(cmd *cobra.Command, args []string) error {
	name, projectPath := args[0], args[1]
	if _, err := project.CreateProjectFromTemplate(templatesPath(), name, projectPath, templateProjectName); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created project %s from template %q\n", projectPath, name)
	return nil
}

package main

import (
	"fmt"

	"solar-proposal/internal/config"
	"solar-proposal/internal/simulation"
	"solar-proposal/internal/store"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	saveName   string
	saveClient string
	saveInput  string
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage saved projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved projects",
	RunE:  runProjectsList,
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Simulate a saved project and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsShow,
}

var projectsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a scenario YAML as a project",
	RunE:  runProjectsSave,
}

func init() {
	projectsSaveCmd.Flags().StringVar(&saveInput, "input", "", "scenario YAML (required)")
	projectsSaveCmd.Flags().StringVar(&saveName, "name", "", "project name (default: scenario name)")
	projectsSaveCmd.Flags().StringVar(&saveClient, "client", "", "client name")
	_ = projectsSaveCmd.MarkFlagRequired("input")

	projectsCmd.AddCommand(projectsListCmd, projectsShowCmd, projectsSaveCmd)
	rootCmd.AddCommand(projectsCmd)
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	projects, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects found")
		return nil
	}
	fmt.Fprintf(w, "%-36s  %-24s  %-16s  %s\n", "ID", "Name", "Client", "Updated")
	for _, p := range projects {
		fmt.Fprintf(w, "%-36s  %-24s  %-16s  %s\n",
			p.ID, p.Name, p.ClientName, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(w, "%d project(s)\n", len(projects))
	return nil
}

func runProjectsShow(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid project id: %w", err)
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	p, err := st.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	res, err := simulation.New().Run(p.Input)
	if err != nil {
		return err
	}
	title := p.Name
	if p.ClientName != "" {
		title += " (" + p.ClientName + ")"
	}
	printResult(cmd.OutOrStdout(), title, res)
	return nil
}

func runProjectsSave(cmd *cobra.Command, args []string) error {
	sc, err := config.LoadScenario(saveInput)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}
	name := saveName
	if name == "" {
		name = sc.Name
	}
	if name == "" {
		return fmt.Errorf("--name is required when the scenario has no name")
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	p := &store.Project{Name: name, ClientName: saveClient, Input: sc.Input()}
	if err := st.Create(cmd.Context(), p); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved project %s (%s)\n", p.ID, p.Name)
	return nil
}

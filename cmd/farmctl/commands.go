package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tillerhq/farmops/internal/cropplan"
	"github.com/tillerhq/farmops/internal/domain"
	"github.com/tillerhq/farmops/internal/monitor"
	"github.com/tillerhq/farmops/internal/ordergen"
)

const dateLayout = "2006-01-02"

func templatesCmd(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List recurring order templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			var templates []domain.Order
			if err := client.get("/api/v1/templates", &templates); err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"ID", "Customer", "Type", "Frequency", "Next Generation", "Active"})
			for _, t := range templates {
				next := ""
				if t.NextGenerationDate != nil {
					next = t.NextGenerationDate.Format(dateLayout)
				}
				tw.AppendRow(table.Row{t.ID, t.Customer, t.Type, t.Frequency, next, t.Active})
			}
			tw.Render()
			return nil
		},
	}
}

func backfillCmd(client *apiClient) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "backfill [template-id]",
		Short: "Generate orders from recurring templates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/templates/backfill"
			if len(args) == 1 {
				q := url.Values{}
				if from != "" {
					q.Set("from", from)
				}
				if to != "" {
					q.Set("to", to)
				}
				path = "/api/v1/templates/" + args[0] + "/backfill"
				if encoded := q.Encode(); encoded != "" {
					path += "?" + encoded
				}
			}

			var report ordergen.Report
			if err := client.post(path, &report); err != nil {
				return err
			}
			fmt.Printf("templates: %d  generated: %d  skipped: %d  failed: %d\n",
				report.TemplatesProcessed, report.Generated, report.Skipped, report.Failed)
			for _, e := range report.Errors {
				fmt.Println("  error:", e)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "window end (YYYY-MM-DD)")
	return cmd
}

func plansCmd(client *apiClient) *cobra.Command {
	var from, to, harvest string
	var derive bool
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List crop plans, optionally deriving missing ones first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if derive {
				derivePath := "/api/v1/plans/derive"
				if harvest != "" {
					derivePath += "?harvest=" + url.QueryEscape(harvest)
				}
				var report cropplan.Report
				if err := client.post(derivePath, &report); err != nil {
					return err
				}
				fmt.Printf("derived: %d created, %d aggregated, %d skipped, %d failed\n",
					report.PlansCreated, report.PlansAggregated, report.Skipped, report.Failed)
			}

			q := url.Values{}
			if from != "" {
				q.Set("from", from)
			}
			if to != "" {
				q.Set("to", to)
			}
			path := "/api/v1/plans"
			if encoded := q.Encode(); encoded != "" {
				path += "?" + encoded
			}

			var plans []domain.CropPlan
			if err := client.get(path, &plans); err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"ID", "Recipe", "Harvest", "Grams", "Trays", "Plant By", "Status"})
			for _, p := range plans {
				tw.AppendRow(table.Row{
					p.ID, p.RecipeName,
					p.HarvestDate.Format(dateLayout),
					p.GramsNeeded, p.TraysNeeded,
					p.PlantByDate.Format(dateLayout),
					p.Status,
				})
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "harvest window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "harvest window end (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&derive, "derive", false, "derive plans for unplanned orders first")
	cmd.Flags().StringVar(&harvest, "harvest", "", "with --derive, restrict to one harvest date (YYYY-MM-DD)")
	return cmd
}

func recipesCmd(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "recipes",
		Short: "List the grow-recipe catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var recipes []domain.Recipe
			if err := client.get("/api/v1/recipes", &recipes); err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Name", "Product", "Soak (h)", "Germination (d)", "Blackout (d)", "Light (d)", "Yield g/tray"})
			for _, r := range recipes {
				tw.AppendRow(table.Row{
					r.Name, r.Product,
					r.SoakHours, r.GerminationDays, r.BlackoutDays, r.LightDays,
					r.YieldGramsPerTray,
				})
			}
			tw.Render()
			return nil
		},
	}
}

func tasksCmd(client *apiClient) *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List task schedules coming due",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/tasks/due"
			if by != "" {
				path += "?by=" + url.QueryEscape(by)
			}

			var tasks []domain.TaskSchedule
			if err := client.get(path, &tasks); err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Due", "Resource", "Crop", "Target Stage"})
			for _, t := range tasks {
				crop, target := "", ""
				if c := t.Condition.CropStage; c != nil {
					crop = c.CropID.String()
					target = string(c.TargetStage)
				}
				tw.AppendRow(table.Row{t.NextRunAt.Format("2006-01-02 15:04"), t.ResourceType, crop, target})
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "due before (YYYY-MM-DD)")
	return cmd
}

func sweepCmd(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run a monitor sweep and show the categorized report",
		RunE: func(cmd *cobra.Command, args []string) error {
			var report monitor.Report
			if err := client.post("/api/v1/monitor/sweep", &report); err != nil {
				return err
			}

			fmt.Printf("overdue: %d  urgent: %d  upcoming: %d  on track: %d  reminders: %d\n",
				report.Overdue, report.Urgent, report.Upcoming, report.OnTrack, report.RemindersSent)

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Category", "Resource", "Due", "Detail"})
			for _, item := range report.Items {
				if item.Category == monitor.CategoryOnTrack {
					continue
				}
				tw.AppendRow(table.Row{item.Category, item.Resource, item.DueAt.Format(dateLayout), item.Detail})
			}
			tw.Render()
			return nil
		},
	}
}

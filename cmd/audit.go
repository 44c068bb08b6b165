package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/CosmoTheDev/eventsync/internal/audit"
	"github.com/CosmoTheDev/eventsync/internal/config"
	"github.com/CosmoTheDev/eventsync/internal/tui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	auditRoot   string
	auditFiles  []string
	auditOutput string
)

var auditCmd = &cobra.Command{
	Use:   "audit [project-folder...]",
	Short: "Check packages for essential configuration files",
	Long: `Runs the package audit rules against each project folder. With --root,
every folder below it that contains a package.json is audited.

By default every package must contain eslint.config.js, tsconfig.json and
OWNERS. Override the list with --file (repeatable) or audit.essential_files.

Examples:
  eventsync audit ./packages/web ./packages/api
  eventsync audit --root . --file tsconfig.json --file OWNERS`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringVar(&auditRoot, "root", "", "Discover projects below this folder")
	auditCmd.Flags().StringSliceVar(&auditFiles, "file", nil, "Required file (repeatable; overrides config)")
	auditCmd.Flags().StringVar(&auditOutput, "output", "table", "Output format: table|json")
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fs := afero.NewOsFs()
	var projects []audit.Project
	for _, folder := range args {
		projects = append(projects, audit.Project{Folder: folder})
	}
	if auditRoot != "" {
		found, err := audit.DiscoverProjects(fs, auditRoot, audit.DefaultProjectMarker)
		if err != nil {
			return fmt.Errorf("discovering projects: %w", err)
		}
		projects = append(projects, found...)
	}
	if len(projects) == 0 {
		return fmt.Errorf("no projects to audit: pass folders or --root")
	}

	ruleCfg := audit.RuleConfig{EssentialFiles: cfg.Audit.EssentialFiles}
	if len(auditFiles) > 0 {
		ruleCfg.EssentialFiles = auditFiles
	}

	report := audit.Run(ctx, projects, []audit.Rule{audit.EssentialConfigFiles(fs)}, ruleCfg)

	switch auditOutput {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(auditJSON(report)); err != nil {
			return err
		}
	default:
		tui.RenderAuditReport(os.Stdout, report, verbose)
	}

	if n := report.IssueCount(); n > 0 {
		return fmt.Errorf("%d audit issue(s) found", n)
	}
	if report.HasErrors() {
		return fmt.Errorf("some audit rules failed to run")
	}
	return nil
}

type auditProjectJSON struct {
	Name   string        `json:"name"`
	Folder string        `json:"folder"`
	Issues []audit.Issue `json:"issues"`
	Errors []string      `json:"errors,omitempty"`
}

func auditJSON(r audit.Report) []auditProjectJSON {
	out := make([]auditProjectJSON, 0, len(r.Projects))
	for _, p := range r.Projects {
		item := auditProjectJSON{
			Name:   p.Project.Name,
			Folder: p.Project.Folder,
			Issues: p.Issues,
		}
		if item.Issues == nil {
			item.Issues = []audit.Issue{}
		}
		for _, err := range p.Errors {
			item.Errors = append(item.Errors, err.Error())
		}
		out = append(out, item)
	}
	return out
}

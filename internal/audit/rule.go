// Package audit checks monorepo packages against a set of rules.
package audit

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Project is one package folder in the monorepo.
type Project struct {
	Name   string
	Folder string
}

// RuleConfig carries per-rule overrides.
type RuleConfig struct {
	// EssentialFiles replaces the default file list of the essential-config-file rule.
	EssentialFiles []string
}

// Issue is one problem a rule detected.
type Issue struct {
	Rule    string `json:"rule"`
	Content string `json:"content"`
}

// Rule is a named check run against one project.
type Rule struct {
	Name string
	Fn   func(ctx context.Context, p Project, cfg RuleConfig) ([]Issue, error)
}

// ProjectReport holds the issues found in one project.
type ProjectReport struct {
	Project Project
	Issues  []Issue
	// Errors are rule failures (not findings), e.g. permission errors while probing.
	Errors []error
}

// Report is the result of Run.
type Report struct {
	Projects []ProjectReport
}

// IssueCount returns the total number of issues across all projects.
func (r Report) IssueCount() int {
	n := 0
	for _, p := range r.Projects {
		n += len(p.Issues)
	}
	return n
}

// HasErrors reports whether any rule failed to run.
func (r Report) HasErrors() bool {
	for _, p := range r.Projects {
		if len(p.Errors) > 0 {
			return true
		}
	}
	return false
}

// Run applies every rule to every project. Projects are reported in the
// order given; a failing rule is recorded in the project's Errors and does not
// stop the others.
func Run(ctx context.Context, projects []Project, rules []Rule, cfg RuleConfig) Report {
	report := Report{Projects: make([]ProjectReport, len(projects))}
	for i, p := range projects {
		if p.Name == "" {
			p.Name = filepath.Base(p.Folder)
		}
		pr := ProjectReport{Project: p}
		for _, rule := range rules {
			issues, err := rule.Fn(ctx, p, cfg)
			if err != nil {
				pr.Errors = append(pr.Errors, fmt.Errorf("rule %s: %w", rule.Name, err))
				continue
			}
			pr.Issues = append(pr.Issues, issues...)
		}
		report.Projects[i] = pr
	}
	return report
}

// probeAll runs probe for every item concurrently and keeps the non-nil
// results in input order.
func probeAll[T any](ctx context.Context, items []string, probe func(context.Context, string) (*T, error)) ([]T, error) {
	results := make([]*T, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			r, err := probe(gctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

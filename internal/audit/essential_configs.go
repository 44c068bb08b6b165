package audit

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// EssentialConfigRuleName identifies the essential-config-file rule.
const EssentialConfigRuleName = "essential-config-file"

// DefaultEssentialFiles must exist in every package unless overridden.
var DefaultEssentialFiles = []string{"eslint.config.js", "tsconfig.json", "OWNERS"}

// EssentialConfigFiles returns the rule requiring every file in
// RuleConfig.EssentialFiles (or DefaultEssentialFiles) to exist in the
// project folder. Files are probed concurrently; issues follow the list order.
func EssentialConfigFiles(fs afero.Fs) Rule {
	return Rule{
		Name: EssentialConfigRuleName,
		Fn: func(ctx context.Context, p Project, cfg RuleConfig) ([]Issue, error) {
			files := cfg.EssentialFiles
			if len(files) == 0 {
				files = DefaultEssentialFiles
			}
			files = dedupe(files)
			return probeAll(ctx, files, func(_ context.Context, file string) (*Issue, error) {
				path := file
				if !filepath.IsAbs(path) {
					path = filepath.Join(p.Folder, file)
				}
				exists, err := afero.Exists(fs, path)
				if err != nil {
					return nil, fmt.Errorf("checking %s: %w", path, err)
				}
				if exists {
					return nil, nil
				}
				return &Issue{
					Rule:    EssentialConfigRuleName,
					Content: fmt.Sprintf("`%s` does not exist, please add it to your package.", filepath.Base(file)),
				}, nil
			})
		},
	}
}

func dedupe(files []string) []string {
	seen := make(map[string]struct{}, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

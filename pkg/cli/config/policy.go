package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/collie-dev/collie/pkg/domain/model"
)

// Policy holds triage policy configuration. Settings come either from
// individual flags or from a TOML policy file; when a file is given it takes
// precedence over the flag-level settings.
type Policy struct {
	Path             string
	MergeMethod      string
	AllowedTypes     []string
	ExcludedPackages []string
	AutoApprove      bool
	AutoMerge        bool
}

// policyFile is the TOML schema of a policy file
type policyFile struct {
	MergeMethod      string   `toml:"merge_method"`
	AllowedTypes     []string `toml:"allowed_update_types"`
	ExcludedPackages []string `toml:"excluded_packages"`
	AutoApprove      bool     `toml:"auto_approve"`
	AutoMerge        bool     `toml:"auto_merge"`
}

// Flags returns CLI flags for policy configuration
func (c *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "policy",
			Usage:       "Path to a TOML policy file (overrides the policy flags)",
			Destination: &c.Path,
			Sources:     cli.EnvVars("COLLIE_POLICY"),
		},
		&cli.StringFlag{
			Name:        "merge-method",
			Usage:       "Merge method for auto-merged updates (merge, squash, rebase)",
			Value:       "squash",
			Destination: &c.MergeMethod,
			Sources:     cli.EnvVars("COLLIE_MERGE_METHOD"),
		},
		&cli.StringSliceFlag{
			Name:        "allowed-update-type",
			Usage:       "Update type eligible for auto-approval (repeatable; empty means manual review only)",
			Destination: &c.AllowedTypes,
			Sources:     cli.EnvVars("COLLIE_ALLOWED_UPDATE_TYPES"),
		},
		&cli.StringSliceFlag{
			Name:        "excluded-package",
			Usage:       "Package name excluded from automated updates, exact match (repeatable)",
			Destination: &c.ExcludedPackages,
			Sources:     cli.EnvVars("COLLIE_EXCLUDED_PACKAGES"),
		},
		&cli.BoolFlag{
			Name:        "auto-approve",
			Usage:       "Approve eligible updates automatically",
			Destination: &c.AutoApprove,
			Sources:     cli.EnvVars("COLLIE_AUTO_APPROVE"),
		},
		&cli.BoolFlag{
			Name:        "auto-merge",
			Usage:       "Merge approved updates automatically",
			Destination: &c.AutoMerge,
			Sources:     cli.EnvVars("COLLIE_AUTO_MERGE"),
		},
	}
}

// Load builds the validated policy value used for evaluation
func (c *Policy) Load() (*model.Policy, error) {
	raw := policyFile{
		MergeMethod:      c.MergeMethod,
		AllowedTypes:     c.AllowedTypes,
		ExcludedPackages: c.ExcludedPackages,
		AutoApprove:      c.AutoApprove,
		AutoMerge:        c.AutoMerge,
	}

	if c.Path != "" {
		data, err := os.ReadFile(c.Path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read policy file", goerr.V("path", c.Path))
		}
		raw = policyFile{}
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, goerr.Wrap(err, "failed to parse policy file", goerr.V("path", c.Path))
		}
	}

	return raw.build()
}

func (f *policyFile) build() (*model.Policy, error) {
	method := model.ParseMergeMethod(f.MergeMethod)
	if method == model.MergeMethodInvalid {
		return nil, goerr.New("invalid merge method, must be merge, squash or rebase",
			goerr.V("merge_method", f.MergeMethod))
	}

	allowed := make([]model.UpdateType, 0, len(f.AllowedTypes))
	for _, raw := range f.AllowedTypes {
		t := model.ParseUpdateType(raw)
		if t == model.UpdateTypeUnknown {
			// "unknown" is never allowlistable: unclassified updates always hold
			return nil, goerr.New("invalid allowed update type, must be major, minor or patch",
				goerr.V("update_type", raw))
		}
		allowed = append(allowed, t)
	}

	return &model.Policy{
		MergeMethod:        method,
		AllowedUpdateTypes: allowed,
		ExcludedPackages:   f.ExcludedPackages,
		AutoApprove:        f.AutoApprove,
		AutoMerge:          f.AutoMerge,
	}, nil
}

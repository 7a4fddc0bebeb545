package usecase_test

import (
	"testing"

	"github.com/collie-dev/collie/pkg/domain/model"
	"github.com/collie-dev/collie/pkg/usecase"
)

func TestExtractUpdateRequest(t *testing.T) {
	tests := []struct {
		name        string
		pr          *model.PullRequest
		wantPackage string
		wantType    model.UpdateType
		wantEco     string
		wantSec     bool
		wantErr     bool
	}{
		{
			name: "dependabot patch bump",
			pr: &model.PullRequest{
				Title:   "Bump left-pad from 1.3.0 to 1.3.1",
				Author:  "dependabot[bot]",
				HeadRef: "dependabot/npm_and_yarn/left-pad-1.3.1",
			},
			wantPackage: "npm:left-pad",
			wantType:    model.UpdateTypePatch,
			wantEco:     "npm",
		},
		{
			name: "dependabot major bump with directory suffix",
			pr: &model.PullRequest{
				Title:   "Bump golang.org/x/net from 0.17.0 to 1.2.0 in /tools",
				Author:  "dependabot[bot]",
				HeadRef: "dependabot/go_modules/tools/golang.org/x/net-1.2.0",
			},
			wantPackage: "gomod:golang.org/x/net",
			wantType:    model.UpdateTypeMajor,
			wantEco:     "gomod",
		},
		{
			name: "conventional commit prefix",
			pr: &model.PullRequest{
				Title:   "chore(deps): update requests from 2.28.0 to 2.29.0",
				Author:  "renovate[bot]",
				HeadRef: "renovate/requests-2.x",
				Labels:  []string{"python"},
			},
			wantPackage: "pip:requests",
			wantType:    model.UpdateTypeMinor,
			wantEco:     "pip",
		},
		{
			name: "quoted package name",
			pr: &model.PullRequest{
				Title:   "Bump `serde` from 1.0.100 to 1.0.101",
				Author:  "dependabot[bot]",
				HeadRef: "dependabot/cargo/serde-1.0.101",
			},
			wantPackage: "cargo:serde",
			wantType:    model.UpdateTypePatch,
			wantEco:     "cargo",
		},
		{
			name: "security label marks the update as a security fix",
			pr: &model.PullRequest{
				Title:   "Bump lodash from 4.17.20 to 5.0.0",
				Author:  "dependabot[bot]",
				HeadRef: "dependabot/npm_and_yarn/lodash-5.0.0",
				Labels:  []string{"dependencies", "Security"},
			},
			wantPackage: "npm:lodash",
			wantType:    model.UpdateTypeMajor,
			wantEco:     "npm",
			wantSec:     true,
		},
		{
			name: "unparseable versions normalize to unknown, not patch",
			pr: &model.PullRequest{
				Title:   "Bump libfoo from abcdef1 to fedcba2",
				Author:  "dependabot[bot]",
				HeadRef: "dependabot/docker/libfoo",
			},
			wantPackage: "docker:libfoo",
			wantType:    model.UpdateTypeUnknown,
			wantEco:     "docker",
		},
		{
			name: "bump-to form without previous version is unknown",
			pr: &model.PullRequest{
				Title:   "Update left-pad to 1.3.1",
				Author:  "renovate[bot]",
				HeadRef: "renovate/left-pad-1.x",
			},
			wantPackage: "left-pad",
			wantType:    model.UpdateTypeUnknown,
		},
		{
			name: "unrecognized branch ecosystem passes through",
			pr: &model.PullRequest{
				Title:   "Bump foo from 1.0.0 to 1.0.1",
				Author:  "dependabot[bot]",
				HeadRef: "dependabot/hex/foo-1.0.1",
			},
			wantPackage: "hex:foo",
			wantType:    model.UpdateTypePatch,
			wantEco:     "hex",
		},
		{
			name: "title without a package name is an error",
			pr: &model.PullRequest{
				Title:  "Weekly dependency refresh",
				Author: "dependabot[bot]",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := usecase.ExtractUpdateRequest(tt.pr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractUpdateRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if req.PackageName != tt.wantPackage {
				t.Errorf("PackageName = %v, want %v", req.PackageName, tt.wantPackage)
			}
			if req.UpdateType != tt.wantType {
				t.Errorf("UpdateType = %v, want %v", req.UpdateType, tt.wantType)
			}
			if req.Ecosystem != tt.wantEco {
				t.Errorf("Ecosystem = %v, want %v", req.Ecosystem, tt.wantEco)
			}
			if req.IsSecurityFix != tt.wantSec {
				t.Errorf("IsSecurityFix = %v, want %v", req.IsSecurityFix, tt.wantSec)
			}
			if req.SourceActor != tt.pr.Author {
				t.Errorf("SourceActor = %v, want %v", req.SourceActor, tt.pr.Author)
			}
		})
	}
}

package model_test

import (
	"testing"

	"github.com/collie-dev/collie/pkg/domain/model"
)

func TestParseUpdateType(t *testing.T) {
	tests := []struct {
		input string
		want  model.UpdateType
	}{
		{"major", model.UpdateTypeMajor},
		{"MINOR", model.UpdateTypeMinor},
		{" patch ", model.UpdateTypePatch},
		{"unknown", model.UpdateTypeUnknown},
		{"", model.UpdateTypeUnknown},
		{"semver-major", model.UpdateTypeUnknown},
		{"hotfix", model.UpdateTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := model.ParseUpdateType(tt.input); got != tt.want {
				t.Errorf("ParseUpdateType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMergeMethod(t *testing.T) {
	tests := []struct {
		input string
		want  model.MergeMethod
	}{
		{"merge", model.MergeMethodMerge},
		{"Squash", model.MergeMethodSquash},
		{"rebase", model.MergeMethodRebase},
		{"fast-forward", model.MergeMethodInvalid},
		{"", model.MergeMethodInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := model.ParseMergeMethod(tt.input); got != tt.want {
				t.Errorf("ParseMergeMethod(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassifyUpdate(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want model.UpdateType
	}{
		{"patch bump", "1.3.0", "1.3.1", model.UpdateTypePatch},
		{"minor bump", "1.3.9", "1.4.0", model.UpdateTypeMinor},
		{"major bump", "1.9.9", "2.0.0", model.UpdateTypeMajor},
		{"major bump from zero", "0.17.0", "1.0.0", model.UpdateTypeMajor},
		{"v-prefixed versions", "v1.2.3", "v1.2.4", model.UpdateTypePatch},
		{"same version is ambiguous", "1.2.3", "1.2.3", model.UpdateTypeUnknown},
		{"downgrade is ambiguous", "2.0.0", "1.9.9", model.UpdateTypeUnknown},
		{"unparseable from", "abcdef1", "1.2.3", model.UpdateTypeUnknown},
		{"unparseable to", "1.2.3", "latest", model.UpdateTypeUnknown},
		{"empty versions", "", "", model.UpdateTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.ClassifyUpdate(tt.from, tt.to); got != tt.want {
				t.Errorf("ClassifyUpdate(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

package cli

import (
	"strings"
	"testing"
)

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name    string
		nodes   int
		edges   int
		cached  bool
		want    []string
		notWant []string
	}{
		{"with edges", 5, 5, false, []string{"5 nodes", "5 edges", iconFresh}, []string{iconCached}},
		{"node only", 3, 0, false, []string{"3 nodes", iconFresh}, []string{"edges"}},
		{"cached", 10, 15, true, []string{"10 nodes", "15 edges", iconCached}, []string{iconFresh}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statsLine(tt.nodes, tt.edges, tt.cached)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("statsLine = %q, missing %q", got, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("statsLine = %q, should not contain %q", got, w)
				}
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion bash: %v", err)
	}
	if !strings.Contains(out, "graphic") {
		t.Error("bash completion does not mention graphic")
	}

	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("completion accepted an unsupported shell")
	}
}

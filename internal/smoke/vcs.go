package smoke

import (
	"os/exec"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// gitInfo carries repository metadata for trace correlation. Fields are
// empty when the harness runs outside a git checkout.
type gitInfo struct {
	CommitSHA string
	Branch    string
}

func collectGitInfo() gitInfo {
	return gitInfo{
		CommitSHA: gitOutput("rev-parse", "HEAD"),
		Branch:    gitOutput("rev-parse", "--abbrev-ref", "HEAD"),
	}
}

func gitOutput(args ...string) string {
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// gitAttributes converts the collected info to span attributes, omitting
// empty fields.
func gitAttributes(info gitInfo) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if info.CommitSHA != "" {
		attrs = append(attrs, attribute.String("vcs.commit.sha", info.CommitSHA))
	}
	if info.Branch != "" {
		attrs = append(attrs, attribute.String("vcs.branch", info.Branch))
	}
	return attrs
}

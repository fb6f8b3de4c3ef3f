// Package biography turns an individual's aggregated facts into prose.
package biography

import (
	"context"

	"github.com/JeremyMcCormick/genaialogy/pkg/familytree"
)

// UserPromptPrefix introduces the facts in the request sent to the model.
const UserPromptPrefix = "Generate a short biography for the following individual:\n"

// DryRun returns the facts block itself instead of calling a model, so a
// report can be checked end to end without network access or an API key.
type DryRun struct{}

// Biography returns the "key: value" block for info.
func (DryRun) Biography(_ context.Context, info *familytree.Info) (string, error) {
	return info.String(), nil
}

// Prompt returns the user message sent to a model for info.
func Prompt(info *familytree.Info) string {
	return UserPromptPrefix + info.String()
}

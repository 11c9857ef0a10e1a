// Package app contains port definitions for the advisory context.
package app

import "context"

// Advisor is the external advisory engine. Responses are free-form text;
// callers parse them leniently and always degrade to local heuristics on
// failure. An Advisor error never propagates out of a pipeline stage.
type Advisor interface {
	Advise(ctx context.Context, prompt string) (string, error)
}

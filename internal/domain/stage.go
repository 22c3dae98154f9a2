package domain

import "context"

// Stage labels which pipeline step issued a model call.
type Stage string

const (
	// StageClassify is the stage-1 vocabulary extraction call.
	StageClassify Stage = "classify"
	// StageRerank is the stage-2 product rerank call.
	StageRerank Stage = "rerank"
)

type stageKey struct{}

// ContextWithStage tags a context with the current pipeline stage.
func ContextWithStage(ctx context.Context, stage Stage) context.Context {
	return context.WithValue(ctx, stageKey{}, stage)
}

// StageFromContext returns the pipeline stage, or "unknown" if untagged.
func StageFromContext(ctx context.Context) Stage {
	if s, ok := ctx.Value(stageKey{}).(Stage); ok {
		return s
	}
	return Stage("unknown")
}

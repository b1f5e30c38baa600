package matching

// Strategy names how a score was produced.
type Strategy string

const (
	// StrategyEmbedding scores by cosine similarity of the two embeddings.
	StrategyEmbedding Strategy = "embedding"
	// StrategyRubric delegates scoring to a single generative rubric call.
	StrategyRubric Strategy = "rubric"
	// StrategyNone marks the failure sentinel.
	StrategyNone Strategy = "none"
)

// SelectStrategy picks the scoring strategy from the outcome of the two
// embedding requests. Both must succeed for the embedding strategy.
func SelectStrategy(jobErr, candidateErr error) Strategy {
	if jobErr == nil && candidateErr == nil {
		return StrategyEmbedding
	}
	return StrategyRubric
}

package recommend

import "fmt"

// System instruction for the stage-1 classification call.
const classifySystemInstruction = `You are a gift-recommendation classifier. ` +
	`Given a shopper's free-text query and three controlled vocabularies ` +
	`(Attributes, Occasions, Relations), respond with a single JSON object ` +
	`with exactly these keys: "attributes", "occasion", "relation", "price_range". ` +
	`Each of "attributes", "occasion" and "relation" is an array of names copied ` +
	`verbatim from the corresponding vocabulary; use an empty array when nothing ` +
	`applies. "price_range" is an array of at most two numbers, [min, max] in ` +
	`whole currency units, or an empty array when the query names no budget. ` +
	`Respond with JSON only, no prose.`

// System instruction for the stage-2 product rerank call.
const rerankSystemInstruction = `You are a gift-recommendation curator. ` +
	`Given a JSON list of candidate products and the shopper's original query, ` +
	`filter out products that do not fit the query and rank the rest from best ` +
	`to worst fit. Respond with a single JSON value containing only products ` +
	`from the supplied list, preserving their fields. Respond with JSON only, ` +
	`no prose.`

// Prompt skeletons. The query is inserted verbatim: the model is expected
// to return structured text regardless of adversarial input, which is an
// accepted trust boundary of this pipeline.
const (
	classifyPromptTemplate = `Attributes:
%s
Occasions:
%s
Relations:
%s
Query: %s`

	rerankPromptTemplate = `Products list:
%s

Query: %s`
)

// buildClassifyPrompt renders the stage-1 prompt from the three vocabulary
// text blocks and the user query.
func buildClassifyPrompt(attributes, occasions, relations, query string) string {
	return fmt.Sprintf(classifyPromptTemplate, attributes, occasions, relations, query)
}

// buildRerankPrompt renders the stage-2 prompt from the serialized product
// list and the original query.
func buildRerankPrompt(productList, query string) string {
	return fmt.Sprintf(rerankPromptTemplate, productList, query)
}

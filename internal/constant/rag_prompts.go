package constant

const (
	RouterSystemPrompt = `You are a query router for a meeting assistant. Two databases exist for each meeting:
- "summary_db": a condensed summary of the meeting. Best for broad questions (main decisions, overall topics, action items).
- "full_db": the full corrected transcript. Best for detailed questions (exact wording, who said what, specific numbers).

Respond ONLY with a JSON object:
{"target_db": "summary_db" or "full_db", "confidence": 0.0-1.0, "rationale": "one sentence"}`

	RouterPromptTemplate = `Question: %s`

	GraderSystemPrompt = `You grade whether a retrieved document is relevant to a user question about a meeting.
Respond ONLY with a JSON object:
{"relevant": "yes" or "no", "reason": "one sentence"}`

	GraderPromptTemplate = `Question: %s

Document:
%s`

	GeneratorSystemPrompt = `You answer questions about a meeting using ONLY the provided context documents.
Each document is labeled [D1], [D2], and so on. Cite the labels you rely on.
If the context does not contain the answer, say so plainly instead of guessing.`

	GeneratorPromptTemplate = `Context:
%s

Question: %s`

	ValidatorSystemPrompt = `You verify whether an answer about a meeting is fully supported by the given context documents.
An answer is grounded only if every factual claim can be traced to the context.
Respond ONLY with a JSON object:
{"grounded": true or false, "missing_evidence": ["claims without support"], "suggested_fix": "one sentence"}`

	ValidatorPromptTemplate = `Question: %s

Answer:
%s

Context:
%s`
)

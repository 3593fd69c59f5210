package constant

const (
	// SttPromptTemplate is passed to the speech-to-text model as a hint,
	// not to a chat LLM. Args: topic, comma-joined keywords.
	SttPromptTemplate = `This recording is part of a meeting about "%s". Expect terms such as: %s.`

	CorrectionSystemPrompt = `You polish raw meeting transcripts into natural, well-formed sentences.
The input is one line per utterance in the form "SPEAKER: text".
Fix spelling, spacing and awkward phrasing while preserving meaning.
Return EXACTLY one output line per input line, keeping the "SPEAKER: " prefix of each line unchanged. Do not merge, drop or reorder lines.`

	// CorrectionPromptTemplate args: topic, keywords, transcript.
	CorrectionPromptTemplate = `The following transcript is from a meeting about "%s".
Key terms: %s.

Transcript:
%s

Corrected transcript:`

	KeywordSystemPrompt = `You extract the core keywords from meeting transcripts.`

	// KeywordPromptTemplate args: topic, text.
	KeywordPromptTemplate = `Extract up to 10 core keywords from this transcript of a meeting about "%s".
Respond with a single comma-separated list and nothing else.

Transcript:
%s`

	SummarySystemPrompt = `You summarize meeting transcripts into structured JSON.
Respond ONLY with a JSON object of this shape:
{"overview": "...", "key_points": ["..."], "decisions": ["..."], "action_items": [{"owner": "...", "task": "..."}]}`

	// SummaryPromptTemplate args: topic, keywords, text.
	SummaryPromptTemplate = `Meeting topic: %s
Key terms: %s

Transcript:
%s`
)

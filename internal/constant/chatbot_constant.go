package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

// Meeting pipeline statuses
const (
	MeetingStatusUploaded     = "uploaded"
	MeetingStatusDiarizing    = "diarizing"
	MeetingStatusTranscribing = "transcribing"
	MeetingStatusCorrecting   = "correcting"
	MeetingStatusSummarizing  = "summarizing"
	MeetingStatusIndexing     = "indexing"
	MeetingStatusDone         = "done"
	MeetingStatusFailed       = "failed"
)

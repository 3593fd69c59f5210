package dto

import "github.com/google/uuid"

// PublishMeetingUploadedMessage triggers the full processing pipeline
// for a freshly uploaded recording.
type PublishMeetingUploadedMessage struct {
	MeetingId uuid.UUID `json:"meeting_id"`
}

// PublishIndexDocumentMessage asks the indexer to (re)build one
// embedding collection from the given text.
type PublishIndexDocumentMessage struct {
	MeetingId  uuid.UUID `json:"meeting_id"`
	Collection string    `json:"collection"`
	Text       string    `json:"text"`
}

// PipelineProgressEvent is pushed over the websocket hub while a
// meeting moves through the pipeline stages.
type PipelineProgressEvent struct {
	MeetingId uuid.UUID `json:"meeting_id"`
	Stage     string    `json:"stage"`
	Status    string    `json:"status"`
	Detail    string    `json:"detail,omitempty"`
}

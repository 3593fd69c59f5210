package minutes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Segment is one diarized, transcribed slice of the recording.
type Segment struct {
	Speaker  string  `json:"speaker"`
	StartSec float64 `json:"start"`
	EndSec   float64 `json:"end"`
	Text     string  `json:"text"`
}

// ResultFiles records where each artifact of a processed meeting landed.
type ResultFiles struct {
	Dir           string
	SttPath       string
	CorrectedPath string
	SummaryPath   string
	MeetingPath   string
}

type meetingDocument struct {
	Topic      string          `json:"topic"`
	Keywords   []string        `json:"keywords"`
	Summary    json.RawMessage `json:"summary"`
	Transcript []Segment       `json:"transcript"`
	SavedAt    time.Time       `json:"saved_at"`
}

// SaveResults writes the transcript, corrected transcript, summary and
// combined meeting document into a fresh directory under resultsDir.
// The directory name carries a timestamp; a counter suffix resolves
// collisions when the same file is processed twice within a minute.
func SaveResults(resultsDir, baseName, topic string, keywords []string, original, corrected []Segment, summary string) (*ResultFiles, error) {
	dir, err := makeRunDir(resultsDir, baseName)
	if err != nil {
		return nil, err
	}

	files := &ResultFiles{
		Dir:           dir,
		SttPath:       filepath.Join(dir, fmt.Sprintf("stt_%s.txt", baseName)),
		CorrectedPath: filepath.Join(dir, fmt.Sprintf("corrected_%s.txt", baseName)),
		SummaryPath:   filepath.Join(dir, fmt.Sprintf("summary_%s.md", baseName)),
		MeetingPath:   filepath.Join(dir, fmt.Sprintf("meeting_%s.json", baseName)),
	}

	if err := writeTranscript(files.SttPath, original); err != nil {
		return nil, err
	}
	if err := writeTranscript(files.CorrectedPath, corrected); err != nil {
		return nil, err
	}
	if err := writeSummary(files.SummaryPath, topic, keywords, summary); err != nil {
		return nil, err
	}

	doc := meetingDocument{
		Topic:      topic,
		Keywords:   keywords,
		Transcript: corrected,
		SavedAt:    time.Now(),
	}
	if json.Valid([]byte(summary)) {
		doc.Summary = json.RawMessage(summary)
	} else {
		raw, _ := json.Marshal(summary)
		doc.Summary = raw
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(files.MeetingPath, data, 0o644); err != nil {
		return nil, err
	}

	return files, nil
}

func makeRunDir(resultsDir, baseName string) (string, error) {
	stamp := time.Now().Format("200601021504")
	base := filepath.Join(resultsDir, fmt.Sprintf("%s_%s", baseName, stamp))

	dir := base
	for counter := 2; ; counter++ {
		err := os.MkdirAll(filepath.Dir(dir), 0o755)
		if err != nil {
			return "", err
		}
		err = os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if !os.IsExist(err) {
			return "", err
		}
		dir = fmt.Sprintf("%s_%d", base, counter)
	}
}

func writeTranscript(path string, segments []Segment) error {
	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "[%.2fs - %.2fs] %s: %s\n", seg.StartSec, seg.EndSec, seg.Speaker, seg.Text)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func writeSummary(path, topic string, keywords []string, summary string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", topic)
	if len(keywords) > 0 {
		fmt.Fprintf(&b, "Keywords: %s\n\n", strings.Join(keywords, ", "))
	}
	b.WriteString(summary)
	b.WriteString("\n")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// PlainTranscript renders segments as "SPEAKER: text" lines without
// timestamps, the shape the indexer and the LLM prompts expect.
func PlainTranscript(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "%s: %s\n", seg.Speaker, seg.Text)
	}
	return b.String()
}

package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAudioFormat(t *testing.T) {
	assert.True(t, ValidateAudioFormat("meeting.mp3"))
	assert.True(t, ValidateAudioFormat("MEETING.WAV"))
	assert.True(t, ValidateAudioFormat("recording.m4a"))
	assert.False(t, ValidateAudioFormat("notes.txt"))
	assert.False(t, ValidateAudioFormat("archive"))
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0.000", formatSeconds(0))
	assert.Equal(t, "1.500", formatSeconds(1.5))
	assert.Equal(t, "63.250", formatSeconds(63.25))
}

package stt

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTranscriber struct {
	failOn map[int]bool
	calls  atomic.Int32
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string, promptHint string) (string, error) {
	f.calls.Add(1)
	var idx int
	fmt.Sscanf(audioPath, "seg_%d.wav", &idx)
	if f.failOn[idx] {
		return "", fmt.Errorf("backend unavailable")
	}
	return fmt.Sprintf("text-%d", idx), nil
}

func makeJobs(n int) []SegmentJob {
	jobs := make([]SegmentJob, n)
	for i := range jobs {
		jobs[i] = SegmentJob{Index: i, AudioPath: fmt.Sprintf("seg_%d.wav", i)}
	}
	return jobs
}

func TestTranscribePoolOrdering(t *testing.T) {
	ft := &fakeTranscriber{}
	results := TranscribePool(context.Background(), ft, makeJobs(8), 3, nil)

	assert.Len(t, results, 8)
	for i, text := range results {
		assert.Equal(t, fmt.Sprintf("text-%d", i), text)
	}
	assert.Equal(t, int32(8), ft.calls.Load())
}

func TestTranscribePoolSegmentFailureYieldsEmpty(t *testing.T) {
	ft := &fakeTranscriber{failOn: map[int]bool{2: true, 5: true}}

	var failed []int
	results := TranscribePool(context.Background(), ft, makeJobs(6), 2, func(job SegmentJob, err error) {
		failed = append(failed, job.Index)
		assert.True(t, strings.Contains(err.Error(), "unavailable"))
	})

	assert.Empty(t, results[2])
	assert.Empty(t, results[5])
	assert.Equal(t, "text-0", results[0])
	assert.Equal(t, "text-4", results[4])
	assert.ElementsMatch(t, []int{2, 5}, failed)
}

func TestTranscribePoolZeroWorkers(t *testing.T) {
	ft := &fakeTranscriber{}
	results := TranscribePool(context.Background(), ft, makeJobs(3), 0, nil)
	assert.Equal(t, []string{"text-0", "text-1", "text-2"}, results)
}

package stt

import (
	"context"
	"sync"
)

// SegmentJob is one audio slice waiting for transcription.
type SegmentJob struct {
	Index      int
	AudioPath  string
	PromptHint string
}

// TranscribePool fans segment jobs out over a fixed number of workers
// and returns the texts in job-index order. A failed segment yields an
// empty string instead of aborting the batch; the pipeline records the
// gap and moves on.
func TranscribePool(ctx context.Context, transcriber Transcriber, jobs []SegmentJob, workers int, onError func(job SegmentJob, err error)) []string {
	if workers <= 0 {
		workers = 1
	}

	results := make([]string, len(jobs))
	jobCh := make(chan SegmentJob)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				text, err := transcriber.Transcribe(ctx, job.AudioPath, job.PromptHint)
				if err != nil {
					if onError != nil {
						onError(job, err)
					}
					continue
				}
				results[job.Index] = text
			}
		}()
	}

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			// Stop feeding, let the in-flight workers drain.
		case jobCh <- job:
			continue
		}
		break
	}
	close(jobCh)

	wg.Wait()
	return results
}

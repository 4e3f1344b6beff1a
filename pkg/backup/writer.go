package backup

import (
	"bufio"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// writeSections appends one section per collected file to the output writer.
// Workers compute section text in isolation and hand finished sections to
// this goroutine over a channel, so the writer is the only party touching
// the document. With more than one worker, section order follows completion
// order; with one worker it degenerates to collection order.
// It returns the number of files whose content was replaced by a read-error
// placeholder.
func writeSections(w *bufio.Writer, files []FileRecord, maxWorkers int, logger *zap.Logger) (int, error) {
	if len(files) == 0 {
		return 0, nil
	}

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", maxWorkers))
	}
	if maxWorkers > len(files) {
		maxWorkers = len(files)
	}

	jobs := make(chan FileRecord, len(files))
	results := make(chan section, len(files))
	var wg sync.WaitGroup

	logger.Debug("Initializing worker pool", zap.Int("workers", maxWorkers))
	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		workerLogger := logger.With(zap.Int("workerID", i))
		go func() {
			defer wg.Done()
			for rec := range jobs {
				results <- buildSection(rec, workerLogger)
			}
		}()
	}

	for _, rec := range files {
		jobs <- rec
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	total := len(files)
	milestone := 0
	if total >= 10 {
		milestone = total / 10
	}

	processed := 0
	failed := 0
	for sec := range results {
		if _, err := w.WriteString(sec.Text); err != nil {
			return failed, err
		}
		if sec.Failed {
			failed++
		}
		processed++
		logger.Debug("Appended file section",
			zap.String("path", sec.RelPath),
			zap.Int("processed", processed),
			zap.Int("total", total))
		if milestone > 0 && processed%milestone == 0 {
			logger.Info("Backup progress",
				zap.Int("processed", processed),
				zap.Int("total", total))
		}
	}

	return failed, w.Flush()
}

package rawcsv

import (
	"context"
	"runtime"
	"sync"

	"github.com/cartolab/cartolab/internal/domain/roster"
)

// FileResult is the outcome of reading one raw round file. Results preserve
// the discovery order regardless of which worker produced them.
type FileResult struct {
	File    string
	Year    int
	Records []roster.RawRecord
	Err     error
}

type fileJob struct {
	index int
	file  string
	year  int
}

// ReadSeasons reads every file of the given seasons through a bounded worker
// pool. The returned slice follows season and round order, so callers get
// deterministic output even though reads run concurrently.
func ReadSeasons(ctx context.Context, seasons []Season, workers int) []FileResult {
	total := 0
	for _, season := range seasons {
		total += len(season.Files)
	}
	if total == 0 {
		return nil
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > total {
		workers = total
	}

	jobs := make(chan fileJob)
	results := make([]FileResult, total)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if err := ctx.Err(); err != nil {
					results[job.index] = FileResult{File: job.file, Year: job.year, Err: err}
					continue
				}
				records, err := ReadFile(job.file, job.year)
				results[job.index] = FileResult{
					File:    job.file,
					Year:    job.year,
					Records: records,
					Err:     err,
				}
			}
		}()
	}

	index := 0
	for _, season := range seasons {
		for _, file := range season.Files {
			jobs <- fileJob{index: index, file: file, year: season.Year}
			index++
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

package files

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

// DefaultJobs is the number of files converted at once when no limit is given.
const DefaultJobs = 4

// ConvertFunc converts the content of one file. It reports the new content
// and whether it differs from the input.
type ConvertFunc func(path, content string) (string, bool)

// Options controls a batch run.
type Options struct {
	// Check reports what would change without writing anything
	Check bool

	// Jobs bounds how many files are converted concurrently
	Jobs int

	// Convert transforms one file's content
	Convert ConvertFunc
}

// Outcome is the result for one file.
type Outcome struct {
	Path    string
	Changed bool
	Err     error
}

// Process converts every file in paths, writing changed files back unless
// opts.Check is set. Outcomes are returned in the order of paths regardless
// of which file finished first. A failure on one file does not stop the
// others; it is recorded in that file's Outcome.
func Process(ctx context.Context, paths []string, opts Options) []Outcome {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = DefaultJobs
	}

	outcomes := make([]Outcome, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i] = Outcome{Path: path, Err: err}
				return nil
			}
			outcomes[i] = ProcessFile(path, opts.Check, opts.Convert)
			return nil
		})
	}

	// Workers record failures in their outcome and always return nil
	_ = g.Wait()
	return outcomes
}

// ProcessFile converts a single file. Read failures never lead to a write,
// and unchanged files are left untouched.
func ProcessFile(path string, check bool, convert ConvertFunc) Outcome {
	data, err := os.ReadFile(path)
	if err != nil {
		return Outcome{Path: path, Err: fmt.Errorf("failed to read %s: %w", path, err)}
	}

	content, changed := convert(path, string(data))
	if !changed || check {
		return Outcome{Path: path, Changed: changed}
	}

	if err := WriteAtomic(path, []byte(content)); err != nil {
		return Outcome{Path: path, Changed: true, Err: err}
	}
	return Outcome{Path: path, Changed: true}
}

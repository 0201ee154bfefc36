package cli

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"runtime"

	"nbtkit/nbt"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ConvertJob re-encodes one file.
type ConvertJob struct {
	In  string
	Out string
}

// ConvertJobs builds one job per input, writing each output into outDir
// under the input's base name. An empty outDir converts files in place.
func ConvertJobs(paths []string, outDir string) []ConvertJob {
	jobs := make([]ConvertJob, 0, len(paths))
	for _, p := range paths {
		out := p
		if outDir != "" {
			out = filepath.Join(outDir, filepath.Base(p))
		}
		jobs = append(jobs, ConvertJob{In: p, Out: out})
	}
	return jobs
}

var ErrDuplicateOutput = errors.New("two inputs write the same output file")

// CheckConvertJobs rejects job lists in which two jobs write the same file.
func CheckConvertJobs(jobs []ConvertJob) error {
	seen := make(map[string]string, len(jobs))
	for _, job := range jobs {
		out := filepath.Clean(job.Out)
		if prev, ok := seen[out]; ok {
			return errors.Wrapf(ErrDuplicateOutput, "%s and %s both write %s", prev, job.In, out)
		}
		seen[out] = job.In
	}
	return nil
}

// ConvertFiles decodes every job's input with from and writes it back out
// with to. At most GOMAXPROCS files are processed at once; the first failure
// cancels the jobs that have not started yet. Nothing is converted when two
// jobs share an output path.
func ConvertFiles(ctx context.Context, from, to *nbt.Codec, jobs []ConvertJob) error {
	if err := CheckConvertJobs(jobs); err != nil {
		return err
	}
	sem := semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0)))
	g, ctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)
			return convertFile(from, to, job)
		})
	}
	return g.Wait()
}

func convertFile(from, to *nbt.Codec, job ConvertJob) error {
	data, err := ioutil.ReadFile(job.In)
	if err != nil {
		return errors.Wrapf(err, "error reading %s", job.In)
	}
	tag, err := from.Decode(data)
	if err != nil {
		return errors.Wrapf(err, "error decoding %s", job.In)
	}
	defer nbt.Delete(tag)

	out, err := to.Encode(tag)
	if err != nil {
		return errors.Wrapf(err, "error encoding %s", job.In)
	}
	defer to.FreeBuffer(out)

	if err := ioutil.WriteFile(job.Out, out, 0644); err != nil {
		return errors.Wrapf(err, "error writing %s", job.Out)
	}
	logger.Info("converted file", "in", job.In, "out", job.Out, "bytes", len(out))
	return nil
}

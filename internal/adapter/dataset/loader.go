// Package dataset loads the reference career dataset from disk.
//
// The dataset is read once at startup and shared read-only across all
// requests. The process must not serve traffic without it, so every
// failure mode here (missing file, bad JSON, empty array) is an error
// the caller treats as fatal.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/skillsync/skillsync/internal/domain"
)

// Load reads a JSON array of job records from path.
// Elements may carry fields beyond career and core_skills; they are ignored.
func Load(path string) ([]domain.JobRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("op=dataset.Load path=%s: %w", path, err)
	}
	var jobs []domain.JobRecord
	if err := json.Unmarshal(b, &jobs); err != nil {
		return nil, fmt.Errorf("op=dataset.Load path=%s: parse: %w", path, err)
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("op=dataset.Load path=%s: dataset is empty", path)
	}
	for i, j := range jobs {
		if j.Career == "" {
			return nil, fmt.Errorf("op=dataset.Load path=%s: entry %d has no career name", path, i)
		}
	}
	return jobs, nil
}

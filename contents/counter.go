package contents

import (
	"sort"
)

// DefaultTopN is number of packages in report by default
const DefaultTopN = 10

// PackageCount is number of files owned by package
type PackageCount struct {
	Name  string
	Count int
}

// Report is list of packages ordered by count descending,
// packages with equal counts are ordered by name
type Report []PackageCount

// Stats describes lines seen by Counter
type Stats struct {
	Lines     int
	Entries   int
	Malformed int
}

// Counter accumulates number of files per package
type Counter struct {
	counts map[string]int
	stats  Stats
}

// NewCounter creates empty Counter
func NewCounter() *Counter {
	return &Counter{
		counts: make(map[string]int),
	}
}

// Add accounts classified line, malformed records are only counted in stats
func (counter *Counter) Add(r Record) {
	counter.stats.Lines++

	switch rec := r.(type) {
	case *Entry:
		counter.stats.Entries++
		for _, name := range rec.Packages {
			counter.counts[name]++
		}
	case *Malformed:
		counter.stats.Malformed++
	}
}

// AddLine classifies and accounts line
func (counter *Counter) AddLine(line string) {
	counter.Add(Classify(line))
}

// Len returns number of distinct packages
func (counter *Counter) Len() int {
	return len(counter.counts)
}

// Counts returns copy of package count table
func (counter *Counter) Counts() map[string]int {
	result := make(map[string]int, len(counter.counts))
	for name, count := range counter.counts {
		result[name] = count
	}

	return result
}

// Stats returns line statistics
func (counter *Counter) Stats() Stats {
	return counter.stats
}

// Top returns up to n packages with most files
func (counter *Counter) Top(n int) Report {
	report := make(Report, 0, len(counter.counts))
	for name, count := range counter.counts {
		report = append(report, PackageCount{Name: name, Count: count})
	}

	sort.Slice(report, func(i, j int) bool {
		if report[i].Count != report[j].Count {
			return report[i].Count > report[j].Count
		}
		return report[i].Name < report[j].Name
	})

	if n >= 0 && len(report) > n {
		report = report[:n]
	}

	return report
}

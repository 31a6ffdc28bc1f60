package contents

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "gopkg.in/check.v1"
)

type CounterSuite struct {
	lines []string
}

var _ = Suite(&CounterSuite{})

func (s *CounterSuite) SetUpTest(c *C) {
	s.lines = []string{
		"bin/ls   coreutils",
		"bin/cat  coreutils",
		"usr/lib/libc.so   libc6",
		"malformed-line-no-separator",
		"etc/passwd  base-files,shadow",
	}
}

func (s *CounterSuite) TestCounts(c *C) {
	counter := NewCounter()
	for _, line := range s.lines {
		counter.AddLine(line)
	}

	c.Check(counter.Counts(), DeepEquals, map[string]int{
		"coreutils":  2,
		"libc6":      1,
		"base-files": 1,
		"shadow":     1,
	})
	c.Check(counter.Len(), Equals, 4)
	c.Check(counter.Stats(), Equals, Stats{Lines: 5, Entries: 4, Malformed: 1})
}

func (s *CounterSuite) TestCountsCopy(c *C) {
	counter := NewCounter()
	counter.AddLine("bin/ls coreutils")

	counts := counter.Counts()
	counts["coreutils"] = 100

	c.Check(counter.Counts()["coreutils"], Equals, 1)
}

func (s *CounterSuite) TestTop(c *C) {
	report := Aggregate(s.lines, DefaultTopN)

	c.Check(report, DeepEquals, Report{
		{Name: "coreutils", Count: 2},
		{Name: "base-files", Count: 1},
		{Name: "libc6", Count: 1},
		{Name: "shadow", Count: 1},
	})
}

func (s *CounterSuite) TestTopLimit(c *C) {
	counter := NewCounter()
	for i := 0; i < 15; i++ {
		for j := 0; j <= i; j++ {
			counter.AddLine("usr/share/file pkg" + string(rune('a'+i)))
		}
	}

	report := counter.Top(DefaultTopN)
	c.Assert(report, HasLen, 10)
	c.Check(report[0], Equals, PackageCount{Name: "pkgo", Count: 15})
	c.Check(report[9], Equals, PackageCount{Name: "pkgf", Count: 6})

	for i := 1; i < len(report); i++ {
		c.Check(report[i-1].Count >= report[i].Count, Equals, true)
	}
}

func (s *CounterSuite) TestTopEmpty(c *C) {
	c.Check(Aggregate(nil, DefaultTopN), HasLen, 0)
	c.Check(Aggregate([]string{"", "nospace"}, DefaultTopN), HasLen, 0)
}

func (s *CounterSuite) TestOrderIndependent(c *C) {
	forward := NewCounter()
	backward := NewCounter()

	for i := range s.lines {
		forward.AddLine(s.lines[i])
		backward.AddLine(s.lines[len(s.lines)-1-i])
	}

	c.Check(forward.Counts(), DeepEquals, backward.Counts())
	c.Check(forward.Top(DefaultTopN), DeepEquals, backward.Top(DefaultTopN))
}

func (s *CounterSuite) TestIdempotent(c *C) {
	c.Check(Aggregate(s.lines, DefaultTopN), DeepEquals, Aggregate(s.lines, DefaultTopN))
}

func (s *CounterSuite) TestTiesByName(c *C) {
	report := Aggregate([]string{"a zeta", "b alpha", "c mid", "d alpha,zeta"}, 2)

	c.Check(report, DeepEquals, Report{
		{Name: "alpha", Count: 2},
		{Name: "zeta", Count: 2},
	})
}

func (s *CounterSuite) TestAggregateReader(c *C) {
	report, err := AggregateReader(strings.NewReader(strings.Join(s.lines, "\n")+"\n"), DefaultTopN)
	c.Assert(err, IsNil)
	c.Check(report, HasLen, 4)
	c.Check(report[0], Equals, PackageCount{Name: "coreutils", Count: 2})
}

func (s *CounterSuite) TestAggregateReaderLongLine(c *C) {
	line := strings.Repeat("x", 200*1024) + " big"
	report, err := AggregateReader(strings.NewReader(line), DefaultTopN)
	c.Assert(err, IsNil)
	c.Check(report, DeepEquals, Report{{Name: "big", Count: 1}})
}

type failingReader struct {
	data *bytes.Reader
}

func (r *failingReader) Read(p []byte) (int, error) {
	n, err := r.data.Read(p)
	if err != nil {
		return n, errors.New("disk on fire")
	}
	return n, nil
}

func (s *CounterSuite) TestAggregateReaderError(c *C) {
	_, err := AggregateReader(&failingReader{data: bytes.NewReader([]byte("bin/ls coreutils\n"))}, DefaultTopN)
	c.Check(err, ErrorMatches, "error reading line 2: disk on fire")
}

func (s *CounterSuite) TestAggregateFile(c *C) {
	path := filepath.Join(c.MkDir(), "Contents-amd64")
	c.Assert(os.WriteFile(path, []byte(strings.Join(s.lines, "\n")), 0644), IsNil)

	report, err := AggregateFile(path, 1)
	c.Assert(err, IsNil)
	c.Check(report, DeepEquals, Report{{Name: "coreutils", Count: 2}})

	_, err = AggregateFile(filepath.Join(c.MkDir(), "missing"), 1)
	c.Check(os.IsNotExist(err), Equals, true)
}

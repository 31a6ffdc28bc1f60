package utils

import (
	"os"
	"path/filepath"

	. "gopkg.in/check.v1"
)

type ConfigSuite struct {
	config *ConfigStructure
}

var _ = Suite(&ConfigSuite{})

func (s *ConfigSuite) SetUpTest(c *C) {
	s.config = NewConfig()
}

func (s *ConfigSuite) TestDefaults(c *C) {
	c.Check(s.config.Mirror, Equals, "http://ftp.uk.debian.org/debian/dists/stable/main/")
	c.Check(s.config.StaticURL, Equals, true)
	c.Check(s.config.DownloadDir, Equals, "ContentFiles")
	c.Check(s.config.KeepCompressed, Equals, false)
	c.Check(s.config.DownloadLimitBytes(), Equals, int64(0))
	c.Check(s.config.LogLevel, Equals, "info")
}

func (s *ConfigSuite) TestLoadConfigJSON(c *C) {
	configname := filepath.Join(c.MkDir(), "pkgstats.json")
	f, _ := os.Create(configname)
	f.WriteString(configFile)
	f.Close()

	err := LoadConfig(configname, s.config)
	c.Assert(err, IsNil)
	c.Check(s.config.Mirror, Equals, "http://deb.debian.org/debian/dists/bookworm/main/")
	c.Check(s.config.DownloadLimit, Equals, int64(512))
	c.Check(s.config.DownloadLimitBytes(), Equals, int64(512*1024))
	c.Check(s.config.StaticURL, Equals, false)
	// not mentioned in file, keeps default
	c.Check(s.config.DownloadDir, Equals, "ContentFiles")
}

func (s *ConfigSuite) TestLoadConfigYAML(c *C) {
	configname := filepath.Join(c.MkDir(), "pkgstats.yaml")
	c.Assert(os.WriteFile(configname, []byte(configFileYAML), 0644), IsNil)

	err := LoadConfig(configname, s.config)
	c.Assert(err, IsNil)
	c.Check(s.config.LogFormat, Equals, "json")
	c.Check(s.config.LogLevel, Equals, "warning")
	c.Check(s.config.DownloadDir, Equals, "/var/cache/pkgstats")
	c.Check(s.config.KeepCompressed, Equals, true)
	c.Check(s.config.Mirror, Equals, DefaultMirror)
}

func (s *ConfigSuite) TestLoadConfigInvalid(c *C) {
	configname := filepath.Join(c.MkDir(), "pkgstats.conf")
	c.Assert(os.WriteFile(configname, []byte("mirror: [unterminated"), 0644), IsNil)

	c.Check(LoadConfig(configname, s.config), ErrorMatches, "invalid yaml .* or json .*")
}

func (s *ConfigSuite) TestLoadConfigMissing(c *C) {
	err := LoadConfig(filepath.Join(c.MkDir(), "nope.conf"), s.config)
	c.Check(os.IsNotExist(err), Equals, true)
}

const configFile = `{
	// commented out mirror
	// "mirror": "http://ftp.de.debian.org/debian/dists/stable/main/",
	"mirror": "http://deb.debian.org/debian/dists/bookworm/main/",
	"staticURL": false,
	"downloadSpeedLimit": 512,
}`

const configFileYAML = `log_level: warning
log_format: json
download_dir: /var/cache/pkgstats
keep_compressed: true
`

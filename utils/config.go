package utils

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/DisposaBoy/JsonConfigReader"
	yaml "gopkg.in/yaml.v3"
)

// DefaultMirror is Debian mirror directory holding Contents indexes
const DefaultMirror = "http://ftp.uk.debian.org/debian/dists/stable/main/"

// ConfigStructure is structure of main configuration
type ConfigStructure struct {
	// General
	LogLevel  string `json:"logLevel"                      yaml:"log_level"`
	LogFormat string `json:"logFormat"                     yaml:"log_format"`

	// Mirror
	Mirror    string `json:"mirror"                        yaml:"mirror"`
	StaticURL bool   `json:"staticURL"                     yaml:"static_url"`

	// Downloading
	DownloadDir    string `json:"downloadDir"                   yaml:"download_dir"`
	DownloadLimit  int64  `json:"downloadSpeedLimit"            yaml:"download_limit"`
	KeepCompressed bool   `json:"keepCompressed"                yaml:"keep_compressed"`
}

// NewConfig returns configuration with default values
func NewConfig() *ConfigStructure {
	return &ConfigStructure{
		LogLevel:    "info",
		LogFormat:   "default",
		Mirror:      DefaultMirror,
		StaticURL:   true,
		DownloadDir: "ContentFiles",
	}
}

// LoadConfig loads configuration from json (with comments) or yaml file
func LoadConfig(filename string, config *ConfigStructure) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	decJSON := json.NewDecoder(JsonConfigReader.New(f))
	if err = decJSON.Decode(config); err != nil {
		_, _ = f.Seek(0, 0)
		decYAML := yaml.NewDecoder(f)
		if err2 := decYAML.Decode(config); err2 != nil {
			err = fmt.Errorf("invalid yaml (%s) or json (%s)", err2, err)
		} else {
			err = nil
		}
	}
	return err
}

// DownloadLimitBytes returns download speed limit in bytes per second
func (conf *ConfigStructure) DownloadLimitBytes() int64 {
	return conf.DownloadLimit * 1024
}

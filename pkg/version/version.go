package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Set with -ldflags "-X github.com/mutablelogic/go-agentx/pkg/version.GitTag=..."
var (
	GitTag    string
	GitBranch string
	GitHash   string
)

const (
	// Product name sent in the User-Agent header
	Product = "go-agentx"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the git tag, branch or revision the module was built from,
// or "dev"
func Version() string {
	if GitTag != "" {
		return GitTag
	}
	if GitBranch != "" {
		return GitBranch
	}
	if hash := revision(); len(hash) >= 12 {
		return hash[:12]
	}
	return "dev"
}

// UserAgent returns the value of the User-Agent header sent with requests
func UserAgent() string {
	return Product + "/" + Version()
}

// JSON returns build metadata for the named executable
func JSON(execName string) []byte {
	metadata := map[string]string{
		"name":     execName,
		"version":  Version(),
		"compiler": runtime.Version(),
		"platform": runtime.GOOS + "/" + runtime.GOARCH,
	}
	if GitTag != "" {
		metadata["tag"] = GitTag
	}
	if GitBranch != "" {
		metadata["branch"] = GitBranch
	}
	if hash := revision(); hash != "" {
		metadata["hash"] = hash
	}

	// Add build info from runtime/debug
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Path != "" {
			metadata["source"] = info.Main.Path
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.time":
				if s.Value != "" {
					metadata["build_time"] = s.Value
				}
			case "vcs.modified":
				if s.Value == "true" {
					metadata["modified"] = s.Value
				}
			}
		}
	}

	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		panic(err)
	}
	return data
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// revision returns the hash set at link time, or the vcs revision recorded
// by the go toolchain
func revision() string {
	if GitHash != "" {
		return GitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return ""
}

//go:build darwin || linux || freebsd

package ffi

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"
)

// probeEnv carries the candidate path into a re-exec of the current binary.
// Loading a corrupt or wrong-architecture file can take the process down
// with it, so every candidate is opened in a child process first and only
// its reported version crosses back.
const probeEnv = "_GLFW_GO_VERSION_PROBE"

const probeTimeout = 10 * time.Second

func init() {
	if path := os.Getenv(probeEnv); path != "" {
		runProbeChild(path)
	}
}

// runProbeChild is the child side of the probe protocol: open the file,
// query glfwGetVersion, print the triple, exit. Never returns.
func runProbeChild(path string) {
	handle, err := openLibrary(path)
	if err != nil {
		os.Exit(1)
	}
	version, err := libVersion(handle)
	if err != nil {
		os.Exit(1)
	}
	fmt.Println(version)
	os.Exit(0)
}

// probeVersion asks a child process for the version of the library at path.
func probeVersion(path string) (Version, bool) {
	exe, err := os.Executable()
	if err != nil {
		return Version{}, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, exe)
	cmd.Env = append(os.Environ(), probeEnv+"="+path)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return Version{}, false
	}
	version, err := ParseVersion(out.String())
	if err != nil {
		return Version{}, false
	}
	return version, true
}

// probeAll probes candidates concurrently and returns a lookup usable as a
// probeFunc. Probe children are independent processes, so a small amount of
// parallelism is safe and makes cold starts with many candidates tolerable.
func probeAll(candidates []string) probeFunc {
	type result struct {
		version Version
		ok      bool
	}
	results := make([]result, len(candidates))
	g := new(errgroup.Group)
	g.SetLimit(4)
	for i, path := range candidates {
		i, path := i, path
		g.Go(func() error {
			results[i].version, results[i].ok = probeVersion(path)
			return nil
		})
	}
	_ = g.Wait()

	byPath := make(map[string]result, len(candidates))
	for i, path := range candidates {
		byPath[path] = results[i]
	}
	return func(path string) (Version, bool) {
		r := byPath[path]
		return r.version, r.ok
	}
}

// glfwinfo locates the GLFW shared library, loads it, and prints what it
// found: the file path, the version triple, the compile-time configuration
// string, and the connected monitors and joysticks. Useful for checking
// which library discovery will pick before wiring it into a program.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/agiangrant/glfw"
	"github.com/pelletier/go-toml/v2"
)

func init() {
	runtime.LockOSThread()
}

// fileConfig mirrors glfwinfo.toml.
type fileConfig struct {
	Library struct {
		Path       string   `toml:"path"`
		Variant    string   `toml:"variant"`
		SearchDirs []string `toml:"search_dirs"`
	} `toml:"library"`
}

func main() {
	configPath := flag.String("config", "", "Path to a glfwinfo.toml config file")
	libPath := flag.String("library", "", "Exact shared-library file to load, skipping discovery")
	variant := flag.String("variant", "", "Library variant to prefer on Linux (wayland or x11)")
	probe := flag.Bool("probe", false, "Also initialize the library and list monitors and joysticks")
	flag.Parse()

	cfg := glfw.Config{
		LibraryPath:    *libPath,
		LibraryVariant: *variant,
	}
	if *configPath != "" {
		fc, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if cfg.LibraryPath == "" {
			cfg.LibraryPath = fc.Library.Path
		}
		if cfg.LibraryVariant == "" {
			cfg.LibraryVariant = fc.Library.Variant
		}
		cfg.LibrarySearchDirs = fc.Library.SearchDirs
	}

	session, err := glfw.OpenWith(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("library:  %s\n", session.LibraryPath())
	fmt.Printf("version:  %s\n", session.GetVersion())
	fmt.Printf("build:    %s\n", session.GetVersionString())

	if !*probe {
		return
	}

	if err := session.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer session.Terminate()

	monitors, err := session.GetMonitors()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("monitors: %d\n", len(monitors))
	for i, m := range monitors {
		name, _ := session.GetMonitorName(m)
		mode, err := session.GetVideoMode(m)
		if err != nil {
			fmt.Printf("  %d: %s (no current mode)\n", i, name)
			continue
		}
		fmt.Printf("  %d: %s %dx%d @ %d Hz\n", i, name, mode.Width, mode.Height, mode.RefreshRate)
	}

	count := 0
	for jid := glfw.Joystick1; jid <= glfw.JoystickLast; jid++ {
		present, err := session.JoystickPresent(jid)
		if err != nil || !present {
			continue
		}
		count++
		name, _ := session.GetJoystickName(jid)
		if gamepad, _ := session.JoystickIsGamepad(jid); gamepad {
			gpName, _ := session.GetGamepadName(jid)
			fmt.Printf("  joystick %d: %s (gamepad: %s)\n", int(jid), name, gpName)
		} else {
			fmt.Printf("  joystick %d: %s\n", int(jid), name)
		}
	}
	fmt.Printf("joysticks: %d\n", count)
}

func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &fc, nil
}

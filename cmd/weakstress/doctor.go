// doctor.go implements the 'weakstress doctor' command.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// runtimeModulePath is the import path consumers must require to link
// the weak reference runtime.
const runtimeModulePath = "github.com/molexx/kotlin-native"

// doctorReport is the result of analyzing a consumer's go.mod.
type doctorReport struct {
	goModPath       string
	modulePath      string
	goVersion       string
	requiredVersion string // Empty when the runtime is not required.
	replacement     string // Local or remote replacement, if any.
}

// doctorCommand implements the 'weakstress doctor' command.
//
// It locates the nearest go.mod at or above the given directory
// (default "."), parses it, and reports whether the module links the
// weak reference runtime and through which version or replacement.
//
// Example:
//
//	weakstress doctor
//	weakstress doctor ../consumer-project
func doctorCommand(args []string) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	goMod := findGoMod(dir)
	if goMod == "" {
		fmt.Fprintf(os.Stderr, "Error: no go.mod found at or above %s\n", dir)
		os.Exit(1)
	}

	report, err := analyzeGoMod(goMod)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printDoctorReport(report)
}

// findGoMod walks up from startDir looking for a go.mod file.
//
// Returns the go.mod path, or empty if the filesystem root is reached
// without finding one.
func findGoMod(startDir string) string {
	dir := startDir
	for {
		modPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(modPath); err == nil {
			return modPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// analyzeGoMod parses a go.mod file and extracts the runtime linkage
// facts the doctor reports on.
func analyzeGoMod(goModPath string) (*doctorReport, error) {
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", goModPath, err)
	}

	modFile, err := modfile.Parse(goModPath, data, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", goModPath, err)
	}

	report := &doctorReport{goModPath: goModPath}
	if modFile.Module != nil {
		report.modulePath = modFile.Module.Mod.Path
	}
	if modFile.Go != nil {
		report.goVersion = modFile.Go.Version
	}

	// The runtime's own go.mod trivially "links" itself.
	if report.modulePath == runtimeModulePath {
		report.requiredVersion = "(self)"
		return report, nil
	}

	for _, req := range modFile.Require {
		if req.Mod.Path == runtimeModulePath {
			report.requiredVersion = req.Mod.Version
			break
		}
	}

	for _, rep := range modFile.Replace {
		if rep.Old.Path != runtimeModulePath {
			continue
		}
		newPath := rep.New.Path
		// Resolve relative filesystem replacements against the go.mod
		// location, the same way the go tool will.
		if rep.New.Version == "" && !filepath.IsAbs(newPath) {
			if abs, err := filepath.Abs(filepath.Join(filepath.Dir(goModPath), newPath)); err == nil {
				newPath = abs
			}
		}
		if rep.New.Version != "" {
			report.replacement = newPath + " " + rep.New.Version
		} else {
			report.replacement = newPath
		}
	}

	return report, nil
}

// printDoctorReport writes the linkage summary to stdout.
func printDoctorReport(r *doctorReport) {
	fmt.Printf("go.mod:  %s\n", r.goModPath)
	fmt.Printf("module:  %s\n", r.modulePath)
	if r.goVersion != "" {
		fmt.Printf("go:      %s\n", r.goVersion)
	}

	switch {
	case r.requiredVersion == "(self)":
		fmt.Println("runtime: this is the weak reference runtime module itself")
	case r.requiredVersion != "":
		fmt.Printf("runtime: required at %s\n", r.requiredVersion)
	default:
		fmt.Println("runtime: NOT required")
		fmt.Printf("         add it with: go get %s\n", runtimeModulePath)
	}

	if r.replacement != "" {
		fmt.Printf("replace: %s\n", r.replacement)
	}
}

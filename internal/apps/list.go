// Package apps tracks the package list of the selected phone and how far
// loading it has got.
package apps

import (
	"bufio"
	"fmt"
	"sort"
	"strings"
)

// LoadingState is where the app list is in its load cycle.
type LoadingState int

const (
	// FindingPhones means a device scan is in flight.
	FindingPhones LoadingState = iota
	// LoadingPackages means packages are being read from the selected phone.
	LoadingPackages
	// Ready means the list holds the selected phone's packages.
	Ready
	// Failed means the last scan or load failed; see List.Err.
	Failed
)

// String returns a human-readable name for the state
func (s LoadingState) String() string {
	switch s {
	case FindingPhones:
		return "finding phones"
	case LoadingPackages:
		return "loading packages"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("LoadingState(%d)", int(s))
	}
}

// Package is one installed package.
type Package struct {
	// Name is the package name, e.g. "com.android.chrome".
	Name string
	// Path is the APK path reported by `pm list packages -f`.
	Path string
	// Enabled is false for packages missing from `pm list packages -e`:
	// those disabled on the phone and those uninstalled for the user alike.
	Enabled bool
}

// List is the app list as the UI sees it. Transitions return a new value
// and never modify the receiver.
type List struct {
	State    LoadingState
	Packages []Package
	Err      error
}

// StartFinding begins a device scan. Packages from the previous phone are kept
// until new ones arrive.
func (l List) StartFinding() List {
	l.State = FindingPhones
	l.Err = nil
	return l
}

// StartLoading begins reading packages from the selected phone.
func (l List) StartLoading() List {
	l.State = LoadingPackages
	l.Err = nil
	return l
}

// Loaded stores pkgs sorted by name.
func (l List) Loaded(pkgs []Package) List {
	sorted := append([]Package(nil), pkgs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return List{State: Ready, Packages: sorted}
}

// Fail records err. Packages already shown stay visible.
func (l List) Fail(err error) List {
	l.State = Failed
	l.Err = err
	return l
}

// Clear drops packages, e.g. when no phone is selected any more.
func (l List) Clear() List {
	l.Packages = nil
	return l
}

// ParsePackages parses `pm list packages -f` output. When enabled is given,
// packages missing from it are marked disabled; pass nil to treat every
// package as enabled.
//
//	package:/system/app/Chrome/Chrome.apk=com.android.chrome
func ParsePackages(output string, enabled map[string]bool) []Package {
	var pkgs []Package

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line, ok := strings.CutPrefix(strings.TrimSpace(scanner.Text()), "package:")
		if !ok || line == "" {
			continue
		}

		pkg := Package{Enabled: true}
		// The APK path may itself contain '=', the package name never does.
		if i := strings.LastIndex(line, "="); i >= 0 {
			pkg.Path = line[:i]
			pkg.Name = line[i+1:]
		} else {
			pkg.Name = line
		}
		if pkg.Name == "" {
			continue
		}
		if enabled != nil {
			pkg.Enabled = enabled[pkg.Name]
		}
		pkgs = append(pkgs, pkg)
	}

	return pkgs
}

// PackageNames returns the set of names in pkgs.
func PackageNames(pkgs []Package) map[string]bool {
	names := make(map[string]bool, len(pkgs))
	for _, p := range pkgs {
		names[p.Name] = true
	}
	return names
}

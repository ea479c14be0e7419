package selfupdate

import (
	"fmt"
)

// Status is where the self-update flow is.
type Status int

const (
	Idle Status = iota
	Checking
	UpToDate
	Available
	Updating
	Updated
	Failed
)

// String returns a human-readable name for the status
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Checking:
		return "checking"
	case UpToDate:
		return "up to date"
	case Available:
		return "available"
	case Updating:
		return "updating"
	case Updated:
		return "updated"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name string
	URL  string
	Size int64
}

// Release is a published release.
type Release struct {
	TagName string
	Name    string
	HTMLURL string
	Assets  []Asset
}

// State is what the UI knows about self-updating.
type State struct {
	// LatestRelease is set only when a release newer than the running
	// version exists.
	LatestRelease *Release
	Status        Status
	Err           error
}

// StartUpdate marks the known release as being applied.
func (s State) StartUpdate() State {
	s.Status = Updating
	s.Err = nil
	return s
}

// Finish records the outcome of applying an update. On success the release
// is no longer pending.
func (s State) Finish(err error) State {
	if err != nil {
		s.Status = Failed
		s.Err = err
		return s
	}
	return State{Status: Updated}
}

package domain

import "time"

const (
	MobileScreenWidth = 768
	LowMemoryGB       = 4
)

// LoadTuning holds the empirically tuned delays and caps used by the
// progressive and batch loaders.
type LoadTuning struct {
	MobileRequestDelay  time.Duration
	LowEndRequestDelay  time.Duration
	MobilePhaseDelay    time.Duration
	LowEndPhaseDelay    time.Duration
	ContinueDelay       time.Duration
	MobileContinueDelay time.Duration
	BackgroundDelay     time.Duration
	DefaultInitialLimit int
	MobileInitialLimit  int
	LowEndInitialLimit  int
	LowMemoryFullLimit  int
	PhaseSize           int
}

func DefaultLoadTuning() LoadTuning {
	return LoadTuning{
		MobileRequestDelay:  100 * time.Millisecond,
		LowEndRequestDelay:  150 * time.Millisecond,
		MobilePhaseDelay:    300 * time.Millisecond,
		LowEndPhaseDelay:    500 * time.Millisecond,
		ContinueDelay:       1 * time.Second,
		MobileContinueDelay: 2 * time.Second,
		BackgroundDelay:     500 * time.Millisecond,
		DefaultInitialLimit: 20,
		MobileInitialLimit:  8,
		LowEndInitialLimit:  4,
		LowMemoryFullLimit:  50,
		PhaseSize:           2,
	}
}

// DeviceProfile classifies the client once so loaders do not re-derive it.
// Zero width or memory means "unknown" and never downgrades behavior.
type DeviceProfile struct {
	ScreenWidth int
	MemoryGB    float64
	Tuning      LoadTuning
}

func NewDeviceProfile(screenWidth int, memoryGB float64, tuning LoadTuning) DeviceProfile {
	return DeviceProfile{ScreenWidth: screenWidth, MemoryGB: memoryGB, Tuning: tuning}
}

func (d DeviceProfile) IsMobile() bool {
	return d.ScreenWidth > 0 && d.ScreenWidth < MobileScreenWidth
}

func (d DeviceProfile) IsLowMemory() bool {
	return d.MemoryGB > 0 && d.MemoryGB < LowMemoryGB
}

func (d DeviceProfile) IsLowEnd() bool { return d.IsMobile() && d.IsLowMemory() }

// IsConstrained selects sequential batch loading.
func (d DeviceProfile) IsConstrained() bool { return d.IsMobile() || d.IsLowMemory() }

// InitialLimit caps the first progressive fetch independently of what the
// caller asked for.
func (d DeviceProfile) InitialLimit(requested int) int {
	if requested <= 0 {
		requested = d.Tuning.DefaultInitialLimit
	}
	limit := requested
	switch {
	case d.IsLowEnd():
		limit = min(limit, d.Tuning.LowEndInitialLimit)
	case d.IsMobile() || d.IsLowMemory():
		limit = min(limit, d.Tuning.MobileInitialLimit)
	}
	if limit <= 0 {
		return requested
	}
	return limit
}

// CompleteLimit is the limit of the follow-up fetch; 0 means everything.
func (d DeviceProfile) CompleteLimit() int {
	if d.IsLowMemory() {
		return d.Tuning.LowMemoryFullLimit
	}
	return 0
}

// AutoContinue reports whether the background completion fetch may start on
// its own. Low-end devices trade completeness for responsiveness.
func (d DeviceProfile) AutoContinue() bool { return !d.IsLowEnd() }

func (d DeviceProfile) ContinueDelay() time.Duration {
	if d.IsMobile() {
		return d.Tuning.MobileContinueDelay
	}
	return d.Tuning.ContinueDelay
}

func (d DeviceProfile) RequestDelay() time.Duration {
	if d.IsLowEnd() {
		return d.Tuning.LowEndRequestDelay
	}
	return d.Tuning.MobileRequestDelay
}

func (d DeviceProfile) PhaseDelay() time.Duration {
	if d.IsLowEnd() {
		return d.Tuning.LowEndPhaseDelay
	}
	return d.Tuning.MobilePhaseDelay
}

func (d DeviceProfile) PhaseSize() int {
	if d.Tuning.PhaseSize <= 0 {
		return 1
	}
	return d.Tuning.PhaseSize
}

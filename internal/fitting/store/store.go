// Package store implements the equipment-fitting state machine: slot
// transitions between the armor and weapon workflows, an undo/redo history
// over fitting-config edits, the staged async fitting pipeline, and the
// persisted settings boundary.
//
// A Store is an explicit, constructor-injected object; callers own the
// instance and pass it down. Every action catches at its own boundary and
// surfaces failures through the LastError field, so no operation throws out
// or partially commits.
package store

import (
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/arkavale/gearforge/internal/fitting/detector"
	"github.com/arkavale/gearforge/internal/fitting/domain"
	"github.com/arkavale/gearforge/internal/fitting/history"
	"github.com/arkavale/gearforge/internal/fitting/scale"
)

// State is the full observable state of the fitting store. Snapshot returns
// copies; external code never mutates a State the store holds.
type State struct {
	Slot domain.EquipmentSlot `json:"slot"`

	SelectedAvatar *domain.AssetRef `json:"selected_avatar,omitempty"`
	SelectedArmor  *domain.AssetRef `json:"selected_armor,omitempty"`
	SelectedHelmet *domain.AssetRef `json:"selected_helmet,omitempty"`
	SelectedWeapon *domain.AssetRef `json:"selected_weapon,omitempty"`

	FittingConfig        domain.FittingConfig `json:"fitting_config"`
	HelmetConfig         domain.HelmetConfig  `json:"helmet_config"`
	EnableWeightTransfer bool                 `json:"enable_weight_transfer"`

	FittingProgress int  `json:"fitting_progress"`
	IsFitting       bool `json:"is_fitting"`
	IsArmorFitted   bool `json:"is_armor_fitted"`
	IsArmorBound    bool `json:"is_armor_bound"`
	HelmetFitted    bool `json:"helmet_fitted"`
	HelmetAttached  bool `json:"helmet_attached"`

	ShowWireframe bool                     `json:"show_wireframe"`
	Visualization domain.VisualizationMode `json:"visualization"`
	Animation     domain.AnimationState    `json:"animation"`

	WeaponAdjustments domain.WeaponAdjustments `json:"weapon_adjustments"`
	AutoScaleWeapon   bool                     `json:"auto_scale_weapon"`
	AvatarHeight      float64                  `json:"avatar_height"`
	CreatureCategory  scale.Category           `json:"creature_category"`

	HandleDetection   *domain.HandleDetection `json:"handle_detection,omitempty"`
	IsDetectingHandle bool                    `json:"is_detecting_handle"`

	AssetFilter domain.AssetKind `json:"asset_filter"`
	CurrentTab  string           `json:"current_tab"`

	LastError string `json:"last_error,omitempty"`
}

// ProgressEvent reports coarse pipeline progress to subscribers (UI layers,
// websocket hubs). Err is non-empty when the pipeline entered its error state.
type ProgressEvent struct {
	Stage    string `json:"stage"`
	Progress int    `json:"progress"`
	Err      string `json:"error,omitempty"`
}

// Options configures a Store.
type Options struct {
	// Clock supplies timestamps for history entries. Defaults to time.Now.
	Clock func() time.Time
	// DetectorFactory constructs a grip detector per detection run.
	DetectorFactory detector.Factory
	// Heights is the creature auto-scale table. Defaults to the built-ins.
	Heights *scale.Table
	// StepDelay paces staged progress updates so the UI can observe them.
	// Zero disables pacing; the delays are cosmetic, not correctness-critical.
	StepDelay time.Duration
	// DetectDebug asks the detection service for diagnostic output.
	DetectDebug bool
	// OnProgress is invoked outside the store lock for every progress event.
	OnProgress func(ProgressEvent)
}

// Store owns all fitting state. All exported methods are safe for concurrent
// use; the store is the single writer of its state and of the history ledger.
type Store struct {
	mu sync.Mutex

	clock           func() time.Time
	detectorFactory detector.Factory
	heights         *scale.Table
	stepDelay       time.Duration
	detectDebug     bool
	onProgress      func(ProgressEvent)
	tracer          trace.Tracer

	state  State
	ledger history.Ledger
}

// New creates a store with initial defaults.
func New(opts Options) *Store {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	heights := opts.Heights
	if heights == nil {
		heights = scale.DefaultTable()
	}
	return &Store{
		clock:           clock,
		detectorFactory: opts.DetectorFactory,
		heights:         heights,
		stepDelay:       opts.StepDelay,
		detectDebug:     opts.DetectDebug,
		onProgress:      opts.OnProgress,
		tracer:          otel.Tracer("github.com/arkavale/gearforge/internal/fitting/store"),
		state:           initialState(),
	}
}

func initialState() State {
	return State{
		Slot:              domain.SlotSpine2,
		FittingConfig:     domain.DefaultFittingConfig(),
		HelmetConfig:      domain.DefaultHelmetConfig(),
		Visualization:     domain.VisualizationShaded,
		Animation:         domain.RestAnimation(),
		WeaponAdjustments: domain.DefaultWeaponAdjustments(),
		AutoScaleWeapon:   true,
		AvatarHeight:      scale.ReferenceHeight,
		CreatureCategory:  scale.CategoryHumanoid,
		AssetFilter:       domain.AssetArmor,
		CurrentTab:        "equipment",
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

func copyState(st State) State {
	out := st
	out.SelectedAvatar = copyAsset(st.SelectedAvatar)
	out.SelectedArmor = copyAsset(st.SelectedArmor)
	out.SelectedHelmet = copyAsset(st.SelectedHelmet)
	out.SelectedWeapon = copyAsset(st.SelectedWeapon)
	if st.HandleDetection != nil {
		detection := *st.HandleDetection
		out.HandleDetection = &detection
	}
	return out
}

func copyAsset(ref *domain.AssetRef) *domain.AssetRef {
	if ref == nil {
		return nil
	}
	copied := *ref
	return &copied
}

// LastError returns the current error message, empty when none.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LastError
}

// ClearError clears the surfaced error message.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastError = ""
}

// IsArmorMode reports whether the active slot drives the armor workflow.
func (s *Store) IsArmorMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Slot.IsArmor()
}

// IsWeaponMode reports whether the active slot drives the weapon workflow.
func (s *Store) IsWeaponMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Slot.IsWeapon()
}

// emit delivers a progress event outside the lock.
func (s *Store) emit(event ProgressEvent) {
	if s.onProgress != nil {
		s.onProgress(event)
	}
}

func (s *Store) setProgress(stage string, progress int) {
	s.mu.Lock()
	s.state.FittingProgress = progress
	s.mu.Unlock()
	s.emit(ProgressEvent{Stage: stage, Progress: progress})
}

func (s *Store) pause() {
	if s.stepDelay > 0 {
		time.Sleep(s.stepDelay)
	}
}

// PersistedSlice is the subset of state surviving a reload. Everything else
// re-derives from initial defaults.
type PersistedSlice struct {
	FittingConfig        domain.FittingConfig     `json:"fitting_config"`
	EnableWeightTransfer bool                     `json:"enable_weight_transfer"`
	EquipmentSlot        domain.EquipmentSlot     `json:"equipment_slot"`
	VisualizationMode    domain.VisualizationMode `json:"visualization_mode"`
	ShowWireframe        bool                     `json:"show_wireframe"`
	AvatarHeight         float64                  `json:"avatar_height"`
	CreatureCategory     scale.Category           `json:"creature_category"`
	AutoScaleWeapon      bool                     `json:"auto_scale_weapon"`
	CurrentTab           string                   `json:"current_tab"`
}

// PersistedSlice maps the current state onto the persisted subset.
func (s *Store) PersistedSlice() PersistedSlice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PersistedSlice{
		FittingConfig:        s.state.FittingConfig,
		EnableWeightTransfer: s.state.EnableWeightTransfer,
		EquipmentSlot:        s.state.Slot,
		VisualizationMode:    s.state.Visualization,
		ShowWireframe:        s.state.ShowWireframe,
		AvatarHeight:         s.state.AvatarHeight,
		CreatureCategory:     s.state.CreatureCategory,
		AutoScaleWeapon:      s.state.AutoScaleWeapon,
		CurrentTab:           s.state.CurrentTab,
	}
}

// ApplyPersistedSlice restores the persisted subset at startup. Invalid slot
// values are rejected and leave the store untouched.
func (s *Store) ApplyPersistedSlice(slice PersistedSlice) error {
	slot, err := domain.ParseSlot(string(slice.EquipmentSlot))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.FittingConfig = slice.FittingConfig.Normalize()
	s.state.EnableWeightTransfer = slice.EnableWeightTransfer
	s.state.Slot = slot
	if slice.VisualizationMode != "" {
		s.state.Visualization = slice.VisualizationMode
	}
	s.state.ShowWireframe = slice.ShowWireframe
	if slice.AvatarHeight > 0 {
		s.state.AvatarHeight = slice.AvatarHeight
	}
	if slice.CreatureCategory != "" {
		s.state.CreatureCategory = slice.CreatureCategory
	}
	s.state.AutoScaleWeapon = slice.AutoScaleWeapon
	if slice.CurrentTab != "" {
		s.state.CurrentTab = slice.CurrentTab
	}
	return nil
}

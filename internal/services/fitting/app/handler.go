package app

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/arkavale/gearforge/internal/fitting/domain"
	"github.com/arkavale/gearforge/internal/fitting/exporttoken"
	"github.com/arkavale/gearforge/internal/fitting/scale"
	fitstorage "github.com/arkavale/gearforge/internal/fitting/storage"
	"github.com/arkavale/gearforge/internal/fitting/store"
	"github.com/arkavale/gearforge/internal/fitting/viewer"
	"github.com/arkavale/gearforge/internal/platform/id"
)

const (
	defaultSettingsProfile = "default"
	maxRequestBodyBytes    = 64 * 1024
	maxRetainedArtifacts   = 16
)

// handlerDeps carries the wired collaborators for the HTTP surface.
type handlerDeps struct {
	store   *store.Store
	viewer  viewer.Viewer
	storage fitstorage.Store
	hub     *progressHub
	signer  *exporttoken.SignerConfig
	newID   func() (string, error)
}

// exportArtifact is an exported model retained in memory until downloaded.
type exportArtifact struct {
	filename string
	data     []byte
}

type artifactCache struct {
	mu    sync.Mutex
	byID  map[string]exportArtifact
	order []string
}

func newArtifactCache() *artifactCache {
	return &artifactCache{byID: make(map[string]exportArtifact)}
}

func (c *artifactCache) put(artifactID string, artifact exportArtifact) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.byID[artifactID]; !exists {
		c.order = append(c.order, artifactID)
		if len(c.order) > maxRetainedArtifacts {
			evict := c.order[0]
			c.order = c.order[1:]
			delete(c.byID, evict)
		}
	}
	c.byID[artifactID] = artifact
}

func (c *artifactCache) get(artifactID string) (exportArtifact, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	artifact, ok := c.byID[artifactID]
	return artifact, ok
}

type errorResponse struct {
	Error string `json:"error"`
}

type stateResponse struct {
	State   store.State `json:"state"`
	CanUndo bool        `json:"can_undo"`
	CanRedo bool        `json:"can_redo"`
}

type slotRequest struct {
	Slot string `json:"slot"`
}

type configPatchRequest struct {
	Method               *string  `json:"method,omitempty"`
	Iterations           *int     `json:"iterations,omitempty"`
	StepSize             *float64 `json:"step_size,omitempty"`
	SmoothingRadius      *float64 `json:"smoothing_radius,omitempty"`
	SmoothingStrength    *float64 `json:"smoothing_strength,omitempty"`
	TargetOffset         *float64 `json:"target_offset,omitempty"`
	SampleRate           *float64 `json:"sample_rate,omitempty"`
	PreserveFeatures     *bool    `json:"preserve_features,omitempty"`
	FeatureThreshold     *float64 `json:"feature_threshold,omitempty"`
	ImprovedShrinkwrap   *bool    `json:"improved_shrinkwrap,omitempty"`
	PreserveOpenings     *bool    `json:"preserve_openings,omitempty"`
	PushInteriorVertices *bool    `json:"push_interior_vertices,omitempty"`
}

func (r configPatchRequest) patch() domain.ConfigPatch {
	patch := domain.ConfigPatch{
		Iterations:           r.Iterations,
		StepSize:             r.StepSize,
		SmoothingRadius:      r.SmoothingRadius,
		SmoothingStrength:    r.SmoothingStrength,
		TargetOffset:         r.TargetOffset,
		SampleRate:           r.SampleRate,
		PreserveFeatures:     r.PreserveFeatures,
		FeatureThreshold:     r.FeatureThreshold,
		ImprovedShrinkwrap:   r.ImprovedShrinkwrap,
		PreserveOpenings:     r.PreserveOpenings,
		PushInteriorVertices: r.PushInteriorVertices,
	}
	if r.Method != nil {
		method := domain.FittingMethod(*r.Method)
		patch.Method = &method
	}
	return patch
}

type helmetPatchRequest struct {
	SizeMultiplier  *float64 `json:"size_multiplier,omitempty"`
	FitTightness    *float64 `json:"fit_tightness,omitempty"`
	VerticalOffset  *float64 `json:"vertical_offset,omitempty"`
	ForwardOffset   *float64 `json:"forward_offset,omitempty"`
	RotationDegrees *float64 `json:"rotation_degrees,omitempty"`
}

func (r helmetPatchRequest) patch() domain.HelmetPatch {
	return domain.HelmetPatch{
		SizeMultiplier:  r.SizeMultiplier,
		FitTightness:    r.FitTightness,
		VerticalOffset:  r.VerticalOffset,
		ForwardOffset:   r.ForwardOffset,
		RotationDegrees: r.RotationDegrees,
	}
}

type settingsRequest struct {
	EnableWeightTransfer *bool                     `json:"enable_weight_transfer,omitempty"`
	ShowWireframe        *bool                     `json:"show_wireframe,omitempty"`
	Visualization        *domain.VisualizationMode `json:"visualization,omitempty"`
	CurrentTab           *string                   `json:"current_tab,omitempty"`
	Animation            *domain.AnimationState    `json:"animation,omitempty"`
	AutoScaleWeapon      *bool                     `json:"auto_scale_weapon,omitempty"`
	CreatureCategory     *scale.Category           `json:"creature_category,omitempty"`
	WeaponAdjustments    *domain.WeaponAdjustments `json:"weapon_adjustments,omitempty"`
}

type detectRequest struct {
	Weapon *domain.AssetRef `json:"weapon,omitempty"`
}

type resetRequest struct {
	Scope string `json:"scope"`
}

type savedConfigRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type savedConfigSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type exportResponse struct {
	ArtifactID string `json:"artifact_id"`
	Filename   string `json:"filename"`
	Grant      string `json:"grant,omitempty"`
	Size       int    `json:"size"`
}

// NewHandler builds the fitting HTTP surface.
func NewHandler(deps handlerDeps) http.Handler {
	if deps.hub == nil {
		deps.hub = newProgressHub()
	}
	if deps.newID == nil {
		deps.newID = id.NewID
	}
	artifacts := newArtifactCache()

	mux := http.NewServeMux()
	mux.HandleFunc("/up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		writeState(w, deps.store)
	})

	mux.HandleFunc("/api/slot", func(w http.ResponseWriter, r *http.Request) {
		var req slotRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		if err := deps.store.SetEquipmentSlot(domain.EquipmentSlot(req.Slot), deps.viewer); err != nil {
			writeError(w, err)
			return
		}
		writeState(w, deps.store)
	})

	selectHandler := func(apply func(domain.AssetRef) error) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			var ref domain.AssetRef
			if !decodeRequest(w, r, &ref) {
				return
			}
			if err := apply(ref); err != nil {
				writeError(w, err)
				return
			}
			writeState(w, deps.store)
		}
	}
	mux.HandleFunc("/api/select/avatar", selectHandler(deps.store.SelectAvatar))
	mux.HandleFunc("/api/select/armor", selectHandler(deps.store.SelectArmor))
	mux.HandleFunc("/api/select/helmet", selectHandler(deps.store.SelectHelmet))
	mux.HandleFunc("/api/select/weapon", selectHandler(deps.store.SelectWeapon))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		var req configPatchRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		deps.store.UpdateFittingConfig(req.patch())
		writeState(w, deps.store)
	})

	mux.HandleFunc("/api/helmet/config", func(w http.ResponseWriter, r *http.Request) {
		var req helmetPatchRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		deps.store.UpdateHelmetConfig(req.patch())
		writeState(w, deps.store)
	})

	mux.HandleFunc("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var req settingsRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		if err := applySettings(deps.store, req); err != nil {
			writeError(w, err)
			return
		}
		writeState(w, deps.store)
	})

	mux.HandleFunc("/api/fit", func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		if err := deps.store.PerformFitting(r.Context(), deps.viewer); err != nil {
			writeError(w, err)
			return
		}
		writeState(w, deps.store)
	})

	mux.HandleFunc("/api/bind", func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		if err := deps.store.BindArmorToSkeleton(r.Context(), deps.viewer); err != nil {
			writeError(w, err)
			return
		}
		writeState(w, deps.store)
	})

	mux.HandleFunc("/api/helmet/fit", func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		if err := deps.store.PerformHelmetFitting(r.Context(), deps.viewer); err != nil {
			writeError(w, err)
			return
		}
		writeState(w, deps.store)
	})

	mux.HandleFunc("/api/helmet/attach", func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		if err := deps.store.AttachHelmetToHead(deps.viewer); err != nil {
			writeError(w, err)
			return
		}
		writeState(w, deps.store)
	})

	mux.HandleFunc("/api/helmet/detach", func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		if err := deps.store.DetachHelmetFromHead(deps.viewer); err != nil {
			writeError(w, err)
			return
		}
		writeState(w, deps.store)
	})

	mux.HandleFunc("/api/detect", func(w http.ResponseWriter, r *http.Request) {
		var req detectRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		weapon := req.Weapon
		if weapon == nil {
			snapshot := deps.store.Snapshot()
			weapon = snapshot.SelectedWeapon
		}
		if weapon == nil {
			writeErrorStatus(w, http.StatusBadRequest, "no weapon selected")
			return
		}
		if err := deps.store.DetectGripPoint(r.Context(), *weapon); err != nil {
			writeError(w, err)
			return
		}
		writeState(w, deps.store)
	})

	mux.HandleFunc("/api/undo", func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		deps.store.Undo()
		writeState(w, deps.store)
	})

	mux.HandleFunc("/api/redo", func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		deps.store.Redo()
		writeState(w, deps.store)
	})

	mux.HandleFunc("/api/reset", func(w http.ResponseWriter, r *http.Request) {
		var req resetRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		switch strings.TrimSpace(req.Scope) {
		case "scene":
			deps.store.ResetScene(deps.viewer)
		case "fitting":
			deps.store.ResetFitting()
		case "weapon":
			deps.store.ResetWeaponAdjustments()
		case "all":
			deps.store.ResetAll()
		default:
			writeErrorStatus(w, http.StatusBadRequest, fmt.Sprintf("unknown reset scope %q", req.Scope))
			return
		}
		writeState(w, deps.store)
	})

	mux.HandleFunc("/api/configs", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handleListConfigs(w, r, deps)
		case http.MethodPost:
			handleSaveConfig(w, r, deps)
		default:
			w.Header().Set("Allow", "GET, POST")
			writeErrorStatus(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/api/configs/load", func(w http.ResponseWriter, r *http.Request) {
		handleLoadConfig(w, r, deps)
	})

	mux.HandleFunc("/api/configs/delete", func(w http.ResponseWriter, r *http.Request) {
		handleDeleteConfig(w, r, deps)
	})

	mux.HandleFunc("/api/settings/save", func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		handleSaveSettings(w, r, deps)
	})

	mux.HandleFunc("/api/settings/load", func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		handleLoadSettings(w, r, deps)
	})

	mux.HandleFunc("/api/export", func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		handleExport(w, r, deps, artifacts)
	})

	mux.HandleFunc("/api/export/download", func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		handleDownload(w, r, deps, artifacts)
	})

	wsHandler := websocket.Handler(func(conn *websocket.Conn) {
		handleWSConn(conn, deps.hub)
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			writeErrorStatus(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		wsHandler.ServeHTTP(w, r)
	})

	return mux
}

// handleWSConn streams progress events until the client disconnects. The
// read loop exists only to observe the close.
func handleWSConn(conn *websocket.Conn, hub *progressHub) {
	defer func() {
		_ = conn.Close()
	}()

	peer := newWSPeer(json.NewEncoder(conn))
	hub.subscribe(peer)
	defer hub.unsubscribe(peer)

	decoder := json.NewDecoder(conn)
	for {
		var discard json.RawMessage
		if err := decoder.Decode(&discard); err != nil {
			return
		}
	}
}

func applySettings(s *store.Store, req settingsRequest) error {
	if req.EnableWeightTransfer != nil {
		s.SetEnableWeightTransfer(*req.EnableWeightTransfer)
	}
	if req.ShowWireframe != nil {
		s.SetShowWireframe(*req.ShowWireframe)
	}
	if req.Visualization != nil {
		s.SetVisualization(*req.Visualization)
	}
	if req.CurrentTab != nil {
		s.SetCurrentTab(*req.CurrentTab)
	}
	if req.Animation != nil {
		s.SetAnimation(*req.Animation)
	}
	if req.WeaponAdjustments != nil {
		s.SetWeaponAdjustments(*req.WeaponAdjustments)
	}
	if req.CreatureCategory != nil {
		if err := s.SetCreatureCategory(*req.CreatureCategory); err != nil {
			return err
		}
	}
	if req.AutoScaleWeapon != nil {
		s.SetAutoScaleWeapon(*req.AutoScaleWeapon)
	}
	return nil
}

func handleSaveConfig(w http.ResponseWriter, r *http.Request, deps handlerDeps) {
	if deps.storage == nil {
		writeErrorStatus(w, http.StatusServiceUnavailable, "storage is not configured")
		return
	}
	var req savedConfigRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	filename, data, err := deps.store.SaveConfiguration()
	if err != nil {
		writeError(w, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = filename
	}
	configID, err := deps.newID()
	if err != nil {
		writeError(w, fmt.Errorf("generate config id: %w", err))
		return
	}
	record := fitstorage.SavedConfigRecord{
		ID:           configID,
		Name:         name,
		PayloadBytes: data,
	}
	if err := deps.storage.PutSavedConfig(r.Context(), record); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, savedConfigSummary{ID: record.ID, Name: record.Name})
}

func handleListConfigs(w http.ResponseWriter, r *http.Request, deps handlerDeps) {
	if deps.storage == nil {
		writeErrorStatus(w, http.StatusServiceUnavailable, "storage is not configured")
		return
	}
	records, err := deps.storage.ListSavedConfigs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	summaries := make([]savedConfigSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, savedConfigSummary{
			ID:        record.ID,
			Name:      record.Name,
			CreatedAt: record.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

func handleLoadConfig(w http.ResponseWriter, r *http.Request, deps handlerDeps) {
	if deps.storage == nil {
		writeErrorStatus(w, http.StatusServiceUnavailable, "storage is not configured")
		return
	}
	var req savedConfigRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	record, err := deps.storage.GetSavedConfig(r.Context(), req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := deps.store.LoadConfiguration(record.PayloadBytes); err != nil {
		writeError(w, err)
		return
	}
	writeState(w, deps.store)
}

func handleDeleteConfig(w http.ResponseWriter, r *http.Request, deps handlerDeps) {
	if deps.storage == nil {
		writeErrorStatus(w, http.StatusServiceUnavailable, "storage is not configured")
		return
	}
	var req savedConfigRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if err := deps.storage.DeleteSavedConfig(r.Context(), req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func handleSaveSettings(w http.ResponseWriter, r *http.Request, deps handlerDeps) {
	if deps.storage == nil {
		writeErrorStatus(w, http.StatusServiceUnavailable, "storage is not configured")
		return
	}
	payload, err := json.Marshal(deps.store.PersistedSlice())
	if err != nil {
		writeError(w, err)
		return
	}
	record := fitstorage.SettingsRecord{
		Profile:      defaultSettingsProfile,
		PayloadBytes: payload,
	}
	if err := deps.storage.PutSettings(r.Context(), record); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func handleLoadSettings(w http.ResponseWriter, r *http.Request, deps handlerDeps) {
	if deps.storage == nil {
		writeErrorStatus(w, http.StatusServiceUnavailable, "storage is not configured")
		return
	}
	record, found, err := deps.storage.GetSettings(r.Context(), defaultSettingsProfile)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeErrorStatus(w, http.StatusNotFound, "no persisted settings")
		return
	}
	var slice store.PersistedSlice
	if err := json.Unmarshal(record.PayloadBytes, &slice); err != nil {
		writeError(w, fmt.Errorf("decode persisted settings: %w", err))
		return
	}
	if err := deps.store.ApplyPersistedSlice(slice); err != nil {
		writeError(w, err)
		return
	}
	writeState(w, deps.store)
}

func handleExport(w http.ResponseWriter, r *http.Request, deps handlerDeps, artifacts *artifactCache) {
	data, err := deps.store.ExportModel(r.Context(), deps.viewer)
	if err != nil {
		writeError(w, err)
		return
	}

	artifactID, err := deps.newID()
	if err != nil {
		writeError(w, fmt.Errorf("generate artifact id: %w", err))
		return
	}
	filename := fmt.Sprintf("fitted-model-%s.json", artifactID)
	artifacts.put(artifactID, exportArtifact{filename: filename, data: data})

	resp := exportResponse{
		ArtifactID: artifactID,
		Filename:   filename,
		Size:       len(data),
	}
	if deps.signer != nil {
		jwtID, err := deps.newID()
		if err != nil {
			writeError(w, fmt.Errorf("generate grant id: %w", err))
			return
		}
		grant, err := exporttoken.Issue(*deps.signer, jwtID, artifactID, filename)
		if err != nil {
			writeError(w, fmt.Errorf("issue export grant: %w", err))
			return
		}
		resp.Grant = grant
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleDownload(w http.ResponseWriter, r *http.Request, deps handlerDeps, artifacts *artifactCache) {
	artifactID := strings.TrimSpace(r.URL.Query().Get("artifact_id"))
	if artifactID == "" {
		writeErrorStatus(w, http.StatusBadRequest, "artifact_id is required")
		return
	}

	if deps.signer != nil {
		verifier := exporttoken.VerifierConfig{
			Issuer:   deps.signer.Issuer,
			Audience: deps.signer.Audience,
			Key:      deps.signer.Key.Public().(ed25519.PublicKey),
			Now:      deps.signer.Now,
		}
		grant := strings.TrimSpace(r.URL.Query().Get("grant"))
		if _, err := exporttoken.Validate(grant, artifactID, verifier); err != nil {
			log.Printf("fitting: rejected export download for artifact=%q: %v", artifactID, err)
			writeErrorStatus(w, http.StatusForbidden, "export grant is not valid")
			return
		}
	}

	artifact, ok := artifacts.get(artifactID)
	if !ok {
		writeErrorStatus(w, http.StatusNotFound, "artifact not found")
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.data)
}

// requireMethod enforces the HTTP method and answers 405 otherwise.
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeErrorStatus(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// decodeRequest enforces POST and decodes the JSON body.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !requireMethod(w, r, http.MethodPost) {
		return false
	}
	return decodeJSON(w, r, dst)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeState(w http.ResponseWriter, s *store.Store) {
	writeJSON(w, http.StatusOK, stateResponse{
		State:   s.Snapshot(),
		CanUndo: s.CanUndo(),
		CanRedo: s.CanRedo(),
	})
}

// writeError maps store and storage errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrFittingInProgress):
		status = http.StatusConflict
	case errors.Is(err, fitstorage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrNoAvatar),
		errors.Is(err, store.ErrNoArmor),
		errors.Is(err, store.ErrNoHelmet),
		errors.Is(err, store.ErrNoWeapon),
		errors.Is(err, store.ErrNotFitted),
		errors.Is(err, store.ErrNothingToSave),
		errors.Is(err, domain.ErrInvalidSlot),
		errors.Is(err, domain.ErrEmptyAssetID),
		errors.Is(err, domain.ErrMissingWeaponModel),
		errors.Is(err, scale.ErrUnknownCategory):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNoViewer),
		errors.Is(err, store.ErrDetectorUnavailable):
		status = http.StatusServiceUnavailable
	}
	writeErrorStatus(w, status, err.Error())
}

func writeErrorStatus(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("fitting: encode response: %v", err)
	}
}

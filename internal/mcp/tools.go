package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arkavale/gearforge/internal/fitting/domain"
	"github.com/arkavale/gearforge/internal/fitting/store"
	"github.com/arkavale/gearforge/internal/fitting/viewer"
)

// stateResourceURI addresses the readable fitting state resource.
const stateResourceURI = "fitting://state"

func registerFittingTools(mcpServer *mcp.Server, s *store.Store, v viewer.Viewer) {
	mcp.AddTool(mcpServer, setSlotTool(), setSlotHandler(s, v))
	mcp.AddTool(mcpServer, selectEquipmentTool(), selectEquipmentHandler(s))
	mcp.AddTool(mcpServer, updateConfigTool(), updateConfigHandler(s))
	mcp.AddTool(mcpServer, performFittingTool(), performFittingHandler(s, v))
	mcp.AddTool(mcpServer, undoTool(), undoHandler(s))
	mcp.AddTool(mcpServer, redoTool(), redoHandler(s))
	mcp.AddTool(mcpServer, detectGripTool(), detectGripHandler(s))
}

// registerFittingResources registers readable fitting MCP resources.
func registerFittingResources(mcpServer *mcp.Server, s *store.Store) {
	mcpServer.AddResource(stateResource(), stateResourceHandler(s))
}

// SetSlotInput represents the MCP tool input for slot selection.
type SetSlotInput struct {
	Slot string `json:"slot" jsonschema:"equipment slot (Head, Spine2, Hips, Hand_R, Hand_L)"`
}

// SelectEquipmentInput represents the MCP tool input for asset selection.
type SelectEquipmentInput struct {
	Kind     string `json:"kind" jsonschema:"asset kind (avatar, armor, helmet, weapon)"`
	ID       string `json:"id" jsonschema:"asset identifier"`
	Name     string `json:"name" jsonschema:"display name"`
	ModelURL string `json:"model_url,omitempty" jsonschema:"optional model file URL"`
}

// UpdateConfigInput represents the MCP tool input for fitting parameter edits.
// Omitted fields keep their current values.
type UpdateConfigInput struct {
	Method            *string  `json:"method,omitempty" jsonschema:"fitting method (shrinkwrap)"`
	Iterations        *int     `json:"iterations,omitempty" jsonschema:"deformation iteration count"`
	StepSize          *float64 `json:"step_size,omitempty" jsonschema:"deformation step size"`
	SmoothingRadius   *float64 `json:"smoothing_radius,omitempty" jsonschema:"smoothing radius"`
	SmoothingStrength *float64 `json:"smoothing_strength,omitempty" jsonschema:"smoothing strength"`
	TargetOffset      *float64 `json:"target_offset,omitempty" jsonschema:"offset from the body surface"`
	SampleRate        *float64 `json:"sample_rate,omitempty" jsonschema:"vertex sample rate"`
	PreserveFeatures  *bool    `json:"preserve_features,omitempty" jsonschema:"preserve sharp features"`
	FeatureThreshold  *float64 `json:"feature_threshold,omitempty" jsonschema:"feature angle threshold in degrees"`
}

// PerformFittingInput represents the MCP tool input for a fitting run.
type PerformFittingInput struct{}

// HistoryInput represents the MCP tool input for undo and redo.
type HistoryInput struct{}

// DetectGripInput represents the MCP tool input for grip detection.
type DetectGripInput struct {
	WeaponID       string `json:"weapon_id,omitempty" jsonschema:"weapon asset identifier; defaults to the selected weapon"`
	WeaponName     string `json:"weapon_name,omitempty" jsonschema:"weapon display name"`
	WeaponModelURL string `json:"weapon_model_url,omitempty" jsonschema:"weapon model file URL"`
}

// FittingStateResult summarizes the fitting state after a tool call.
type FittingStateResult struct {
	Slot            string `json:"slot" jsonschema:"active equipment slot"`
	FittingProgress int    `json:"fitting_progress" jsonschema:"fitting progress percentage"`
	IsArmorFitted   bool   `json:"is_armor_fitted" jsonschema:"whether armor has been fitted"`
	IsArmorBound    bool   `json:"is_armor_bound" jsonschema:"whether armor is bound to the skeleton"`
	CanUndo         bool   `json:"can_undo" jsonschema:"whether undo is available"`
	CanRedo         bool   `json:"can_redo" jsonschema:"whether redo is available"`
	LastError       string `json:"last_error,omitempty" jsonschema:"last surfaced error, if any"`
}

// ConfigResult represents the MCP tool output for parameter edits.
type ConfigResult struct {
	Config  domain.FittingConfig `json:"config" jsonschema:"effective fitting configuration"`
	CanUndo bool                 `json:"can_undo" jsonschema:"whether undo is available"`
	CanRedo bool                 `json:"can_redo" jsonschema:"whether redo is available"`
}

// DetectGripResult represents the MCP tool output for grip detection.
type DetectGripResult struct {
	GripPoint  domain.Vec3 `json:"grip_point" jsonschema:"detected grip point"`
	Confidence float64     `json:"confidence" jsonschema:"detection confidence"`
	Label      string      `json:"label" jsonschema:"detected handle label"`
}

func setSlotTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fitting_set_slot",
		Description: "Switches the active equipment slot, clearing slot-scoped state",
	}
}

func selectEquipmentTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fitting_select_equipment",
		Description: "Selects an avatar, armor, helmet, or weapon asset",
	}
}

func updateConfigTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fitting_update_config",
		Description: "Applies a partial edit to the fitting parameters, checkpointing history",
	}
}

func performFittingTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fitting_perform",
		Description: "Runs the staged armor fitting pipeline on the current selections",
	}
}

func undoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fitting_undo",
		Description: "Restores the fitting parameters to the previous history checkpoint",
	}
}

func redoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fitting_redo",
		Description: "Reapplies a fitting parameter edit reverted by undo",
	}
}

func detectGripTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fitting_detect_grip",
		Description: "Detects the grip point on a weapon model",
	}
}

// stateResource defines the readable fitting state resource.
func stateResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "fitting_state",
		Title:       "Fitting State",
		Description: "Readable snapshot of the complete fitting state",
		MIMEType:    "application/json",
		URI:         stateResourceURI,
	}
}

func setSlotHandler(s *store.Store, v viewer.Viewer) mcp.ToolHandlerFor[SetSlotInput, FittingStateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetSlotInput) (*mcp.CallToolResult, FittingStateResult, error) {
		if err := s.SetEquipmentSlot(domain.EquipmentSlot(input.Slot), v); err != nil {
			return nil, FittingStateResult{}, fmt.Errorf("set slot failed: %w", err)
		}
		return nil, stateResult(s), nil
	}
}

func selectEquipmentHandler(s *store.Store) mcp.ToolHandlerFor[SelectEquipmentInput, FittingStateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SelectEquipmentInput) (*mcp.CallToolResult, FittingStateResult, error) {
		ref := domain.AssetRef{
			ID:       input.ID,
			Name:     input.Name,
			Kind:     domain.AssetKind(input.Kind),
			ModelURL: input.ModelURL,
		}

		var err error
		switch input.Kind {
		case "avatar":
			err = s.SelectAvatar(ref)
		case "armor":
			err = s.SelectArmor(ref)
		case "helmet":
			err = s.SelectHelmet(ref)
		case "weapon":
			err = s.SelectWeapon(ref)
		default:
			return nil, FittingStateResult{}, fmt.Errorf("asset kind %q is not supported", input.Kind)
		}
		if err != nil {
			return nil, FittingStateResult{}, fmt.Errorf("select %s failed: %w", input.Kind, err)
		}
		return nil, stateResult(s), nil
	}
}

func updateConfigHandler(s *store.Store) mcp.ToolHandlerFor[UpdateConfigInput, ConfigResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateConfigInput) (*mcp.CallToolResult, ConfigResult, error) {
		patch := domain.ConfigPatch{
			Iterations:        input.Iterations,
			StepSize:          input.StepSize,
			SmoothingRadius:   input.SmoothingRadius,
			SmoothingStrength: input.SmoothingStrength,
			TargetOffset:      input.TargetOffset,
			SampleRate:        input.SampleRate,
			PreserveFeatures:  input.PreserveFeatures,
			FeatureThreshold:  input.FeatureThreshold,
		}
		if input.Method != nil {
			method := domain.FittingMethod(*input.Method)
			patch.Method = &method
		}
		s.UpdateFittingConfig(patch)
		return nil, configResult(s), nil
	}
}

func performFittingHandler(s *store.Store, v viewer.Viewer) mcp.ToolHandlerFor[PerformFittingInput, FittingStateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ PerformFittingInput) (*mcp.CallToolResult, FittingStateResult, error) {
		if err := s.PerformFitting(ctx, v); err != nil {
			return nil, FittingStateResult{}, fmt.Errorf("fitting failed: %w", err)
		}
		return nil, stateResult(s), nil
	}
}

func undoHandler(s *store.Store) mcp.ToolHandlerFor[HistoryInput, ConfigResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ HistoryInput) (*mcp.CallToolResult, ConfigResult, error) {
		s.Undo()
		return nil, configResult(s), nil
	}
}

func redoHandler(s *store.Store) mcp.ToolHandlerFor[HistoryInput, ConfigResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ HistoryInput) (*mcp.CallToolResult, ConfigResult, error) {
		s.Redo()
		return nil, configResult(s), nil
	}
}

func detectGripHandler(s *store.Store) mcp.ToolHandlerFor[DetectGripInput, DetectGripResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DetectGripInput) (*mcp.CallToolResult, DetectGripResult, error) {
		weapon := domain.AssetRef{
			ID:       input.WeaponID,
			Name:     input.WeaponName,
			Kind:     domain.AssetWeapon,
			ModelURL: input.WeaponModelURL,
		}
		if weapon.ID == "" {
			snapshot := s.Snapshot()
			if snapshot.SelectedWeapon == nil {
				return nil, DetectGripResult{}, fmt.Errorf("no weapon selected")
			}
			weapon = *snapshot.SelectedWeapon
		}

		if err := s.DetectGripPoint(ctx, weapon); err != nil {
			return nil, DetectGripResult{}, fmt.Errorf("grip detection failed: %w", err)
		}

		snapshot := s.Snapshot()
		if snapshot.HandleDetection == nil {
			return nil, DetectGripResult{}, fmt.Errorf("grip detection produced no result")
		}
		return nil, DetectGripResult{
			GripPoint:  snapshot.HandleDetection.GripPoint,
			Confidence: snapshot.HandleDetection.Confidence,
			Label:      snapshot.HandleDetection.Label,
		}, nil
	}
}

// stateResourceHandler returns the full state snapshot as a JSON resource.
func stateResourceHandler(s *store.Store) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := stateResourceURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal fitting state: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

func stateResult(s *store.Store) FittingStateResult {
	snapshot := s.Snapshot()
	return FittingStateResult{
		Slot:            string(snapshot.Slot),
		FittingProgress: snapshot.FittingProgress,
		IsArmorFitted:   snapshot.IsArmorFitted,
		IsArmorBound:    snapshot.IsArmorBound,
		CanUndo:         s.CanUndo(),
		CanRedo:         s.CanRedo(),
		LastError:       snapshot.LastError,
	}
}

func configResult(s *store.Store) ConfigResult {
	snapshot := s.Snapshot()
	return ConfigResult{
		Config:  snapshot.FittingConfig,
		CanUndo: s.CanUndo(),
		CanRedo: s.CanRedo(),
	}
}

package service

import (
	"testing"

	"github.com/lensfs/lens/backend/internal/shared/types"
)

type mockProvider struct {
	id string
}

func (m *mockProvider) Definition() types.Service {
	return types.Service{
		ID:           m.id,
		Name:         "Mock Service",
		Description:  "A mock service for testing",
		Category:     types.CategoryFilesystem,
		Capabilities: []string{"list"},
		Tools: []types.Tool{
			{
				ID:          m.id + ".test",
				Name:        "Test Tool",
				Description: "A test tool",
				Returns:     "string",
			},
		},
	}
}

func (m *mockProvider) Execute(toolID string, params map[string]interface{}, ctx *types.Context) (*types.Result, error) {
	return &types.Result{
		Success: true,
		Data:    map[string]interface{}{"tool": toolID},
	}, nil
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	p := &mockProvider{id: "test"}

	if err := r.Register(p); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, ok := r.Get("test"); !ok {
		t.Error("Service should be registered")
	}
}

func TestRegisterEmptyID(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&mockProvider{id: ""}); err == nil {
		t.Error("Register should reject an empty service ID")
	}
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "test"})
	r.Unregister("test")

	if _, ok := r.Get("test"); ok {
		t.Error("Service should be gone after Unregister")
	}
}

func TestList(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "test1"})
	r.Register(&mockProvider{id: "test2"})

	services := r.List(nil)
	if len(services) != 2 {
		t.Errorf("Expected 2 services, got %d", len(services))
	}

	cat := types.CategoryFilesystem
	filtered := r.List(&cat)
	if len(filtered) != 2 {
		t.Errorf("Expected 2 filesystem services, got %d", len(filtered))
	}

	other := types.CategorySystem
	empty := r.List(&other)
	if len(empty) != 0 {
		t.Errorf("Expected 0 system services, got %d", len(empty))
	}
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "test"})

	result, err := r.Execute("test.echo", map[string]interface{}{}, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.Success {
		t.Error("Execute should report success")
	}
	if result.Data["tool"] != "test.echo" {
		t.Errorf("Expected tool ID to reach the provider, got %v", result.Data["tool"])
	}
}

func TestExecuteInvalidToolID(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Execute("noseparator", nil, nil); err == nil {
		t.Error("Execute should reject a tool ID without a service prefix")
	}
}

func TestExecuteUnknownService(t *testing.T) {
	r := NewRegistry()

	result, err := r.Execute("ghost.list", nil, nil)
	if err == nil {
		t.Error("Execute should fail for an unknown service")
	}
	if result == nil || result.Success {
		t.Error("Execute should return a failure result")
	}
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "test1"})
	r.Register(&mockProvider{id: "test2"})

	stats := r.Stats()
	if stats["total_services"] != 2 {
		t.Errorf("Expected 2 services, got %v", stats["total_services"])
	}
	if stats["total_tools"] != 2 {
		t.Errorf("Expected 2 tools, got %v", stats["total_tools"])
	}
}

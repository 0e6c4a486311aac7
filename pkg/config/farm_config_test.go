package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultFarmConfigIsValid(t *testing.T) {
	cfg := DefaultFarmConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	if got := cfg.Field.CellsPerRow(); got != 6 {
		t.Errorf("CellsPerRow: got %d, want 6", got)
	}
	if len(cfg.Economy.Upgrades) != 6 {
		t.Errorf("expected 6 upgrades, got %d", len(cfg.Economy.Upgrades))
	}
}

// TestBundledFarmYAMLMatchesDefaults 确保 data/farm.yaml 与内置默认值一致
func TestBundledFarmYAMLMatchesDefaults(t *testing.T) {
	cfg, err := LoadFarmConfig(filepath.Join("..", "..", "data", "farm.yaml"))
	if err != nil {
		t.Fatalf("LoadFarmConfig() error: %v", err)
	}

	if !reflect.DeepEqual(cfg, DefaultFarmConfig()) {
		t.Errorf("data/farm.yaml diverges from DefaultFarmConfig():\n got  %+v\n want %+v", cfg, DefaultFarmConfig())
	}
}

func TestParseFarmConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *FarmConfig)
	}{
		{
			name: "partial override keeps defaults",
			yamlContent: `
field:
  growDuration: 4.0
economy:
  startBalance: 100
`,
			validate: func(t *testing.T, cfg *FarmConfig) {
				if cfg.Field.GrowDuration != 4.0 {
					t.Errorf("expected growDuration = 4, got %f", cfg.Field.GrowDuration)
				}
				if cfg.Economy.StartBalance != 100 {
					t.Errorf("expected startBalance = 100, got %f", cfg.Economy.StartBalance)
				}
				// 未覆盖的字段保持默认
				if cfg.Workers.Speed != 1.0 {
					t.Errorf("expected default worker speed 1.0, got %f", cfg.Workers.Speed)
				}
				if len(cfg.Economy.Upgrades) != 6 {
					t.Errorf("expected default upgrades to survive, got %d", len(cfg.Economy.Upgrades))
				}
			},
		},
		{
			name: "replace upgrade list",
			yamlContent: `
economy:
  upgrades:
    - {name: only, category: yield_value, price: 3}
`,
			validate: func(t *testing.T, cfg *FarmConfig) {
				if len(cfg.Economy.Upgrades) != 1 || cfg.Economy.Upgrades[0].Name != "only" {
					t.Errorf("expected upgrade list to be replaced, got %+v", cfg.Economy.Upgrades)
				}
			},
		},
		{
			name:        "malformed yaml",
			yamlContent: "field: [",
			wantErr:     true,
			errContains: "failed to parse farm config",
		},
		{
			name: "unlocked row out of range",
			yamlContent: `
field:
  unlockedRows: [0, 9]
`,
			wantErr:     true,
			errContains: "unlocked row 9 out of range",
		},
		{
			name: "grow factor must shrink",
			yamlContent: `
field:
  growTimeFactor: 1.5
`,
			wantErr:     true,
			errContains: "growTimeFactor",
		},
		{
			name: "duplicate upgrade",
			yamlContent: `
economy:
  upgrades:
    - {name: a, category: passive, price: 1}
    - {name: a, category: passive, price: 2}
`,
			wantErr:     true,
			errContains: "duplicate upgrade",
		},
		{
			name: "unknown category",
			yamlContent: `
economy:
  upgrades:
    - {name: a, category: magic, price: 1}
`,
			wantErr:     true,
			errContains: "unknown category",
		},
		{
			name: "role on non passive upgrade",
			yamlContent: `
economy:
  upgrades:
    - {name: a, category: grow_time, price: 1, role: planter}
`,
			wantErr:     true,
			errContains: "role is only allowed",
		},
		{
			name: "row cost references missing row",
			yamlContent: `
economy:
  rowCosts:
    - {row: 42, cost: 1}
`,
			wantErr:     true,
			errContains: "row cost references row 42",
		},
		{
			name: "row cost for pre-unlocked row",
			yamlContent: `
economy:
  rowCosts:
    - {row: 0, cost: 25}
`,
			wantErr:     true,
			errContains: "row 0 which is already unlocked",
		},
		{
			name: "row priced twice",
			yamlContent: `
economy:
  rowCosts:
    - {row: 2, cost: 25}
    - {row: 2, cost: 30}
`,
			wantErr:     true,
			errContains: "duplicate row cost for row 2",
		},
		{
			name: "forager bounds inverted",
			yamlContent: `
foragers:
  boundsMinX: 10
  boundsMaxX: -10
`,
			wantErr:     true,
			errContains: "forager bounds invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseFarmConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadFarmConfigMissingFile(t *testing.T) {
	_, err := LoadFarmConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read farm config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadFarmConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farm.yaml")
	content := "foragers:\n  spawnInterval: 0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadFarmConfig(path)
	if err != nil {
		t.Fatalf("LoadFarmConfig() error: %v", err)
	}
	if cfg.Foragers.SpawnInterval != 0 {
		t.Errorf("expected spawnInterval 0, got %f", cfg.Foragers.SpawnInterval)
	}
}

func TestWorldScreenRoundTrip(t *testing.T) {
	points := [][2]float64{{0, 0}, {-5.5, 2.5}, {3.5, -2.5}, {12, 4}}
	for _, p := range points {
		sx, sy := WorldToScreen(p[0], p[1])
		wx, wy := ScreenToWorld(sx, sy)
		if wx != p[0] || wy != p[1] {
			t.Errorf("round trip (%v, %v) -> (%v, %v)", p[0], p[1], wx, wy)
		}
	}

	// Y 轴方向：世界坐标向上，屏幕坐标向下
	_, syTop := WorldToScreen(0, 1)
	_, syBottom := WorldToScreen(0, -1)
	if syTop >= syBottom {
		t.Errorf("expected world +Y to map above world -Y on screen, got %v >= %v", syTop, syBottom)
	}
}

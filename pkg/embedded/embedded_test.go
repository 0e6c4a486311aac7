package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

// resetState 重置包状态，避免测试之间互相影响
func resetState(t *testing.T) {
	t.Helper()
	dataFS = nil
	initialized = false
	t.Cleanup(func() {
		dataFS = nil
		initialized = false
	})
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/farm.yaml": &fstest.MapFile{Data: []byte("field:\n  growDuration: 5\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	resetState(t)

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
	if IsInitialized() {
		t.Error("Init(nil) should leave the package uninitialized")
	}
}

// TestNotInitialized 测试未初始化时的各个入口
func TestNotInitialized(t *testing.T) {
	resetState(t)

	if _, err := ReadFile(FarmConfigPath); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile(): got %v, want ErrNotInitialized", err)
	}
}

func TestReadFile(t *testing.T) {
	resetState(t)
	Init(testFS())

	data, err := ReadFile(FarmConfigPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "field:\n  growDuration: 5\n" {
		t.Errorf("unexpected content: %q", data)
	}

	if _, err := ReadFile("data/missing.yaml"); err == nil {
		t.Error("missing file should fail")
	}
}

// TestPathNormalization 测试路径标准化
func TestPathNormalization(t *testing.T) {
	resetState(t)
	Init(testFS())

	tests := []struct {
		path   string
		exists bool
	}{
		{"data/farm.yaml", true},
		{"./data/farm.yaml", true},
		{"farm.yaml", false},
		{"assets/farm.yaml", false},
		{"data/other.yaml", false},
	}

	for _, tt := range tests {
		_, err := ReadFile(tt.path)
		if got := err == nil; got != tt.exists {
			t.Errorf("ReadFile(%q): err=%v, want exists=%v", tt.path, err, tt.exists)
		}
	}
}

func TestInvalidPrefix(t *testing.T) {
	resetState(t)
	Init(testFS())

	if _, err := ReadFile("assets/test.png"); err == nil {
		t.Error("Expected error for invalid prefix")
	}
	if _, err := ReadFile("config/farm.yaml"); err == nil {
		t.Error("Expected error for invalid prefix")
	}
}

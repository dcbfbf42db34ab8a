package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// initCLI is a stand-in flag model for exercising Init.
type initCLI struct {
	Level  string        `default:"info"`
	Depth  int           `default:"64"`
	Cache  bool          `default:"true"       negatable:""`
	Wait   time.Duration `default:"1s"`
	Source []string
	Secret string `default:"hidden" hidden:""`
	Pprof  string `name:"pprof-mode"`
}

func initContext(t *testing.T, confPath string) context.Context {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(t.Context(), ktx)
}

func TestInitRun(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create", force: false},
		{name: "overwrite with force", force: true, exists: true},
		{name: "refuse without force", force: false, exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("existing"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			err := (&Init{Force: tt.force}).Run(initContext(t, confPath))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrWriteConfig) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() error = %v", err)
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var doc map[string]map[string]any
			if err := yaml.Unmarshal(data, &doc); err != nil {
				t.Fatalf("invalid YAML: %v\n%s", err, data)
			}

			conf, ok := doc[ConfigIdentifier]
			if !ok {
				t.Fatalf("expected %q key in:\n%s", ConfigIdentifier, data)
			}

			want := map[string]any{
				"level": "info",
				"depth": "64",
				"cache": true,
				"wait":  "1s",
			}

			if len(conf) != len(want) {
				t.Errorf("expected %d entries, got %v", len(want), conf)
			}

			for k, v := range want {
				if conf[k] != v {
					t.Errorf("%s: expected %v, got %v", k, v, conf[k])
				}
			}
		})
	}
}

func TestInitWithoutKongContext(t *testing.T) {
	err := (&Init{}).Run(t.Context())
	if !errors.Is(err, ErrWriteConfig) || !errors.Is(err, ErrNoInput) {
		t.Errorf("expected ErrWriteConfig wrapping ErrNoInput, got %v", err)
	}
}

func TestInitWithInvalidPath(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(parent, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	confPath := filepath.Join(parent, "config.yaml")

	if err := (&Init{}).Run(initContext(t, confPath)); !errors.Is(err, ErrWriteConfig) {
		t.Errorf("expected ErrWriteConfig, got %v", err)
	}
}

func TestInitCreatesParentDirectories(t *testing.T) {
	confPath := filepath.Join(t.TempDir(), "missing", "dir", "config.yaml")

	if err := (&Init{}).Run(initContext(t, confPath)); err != nil {
		t.Fatalf("init error: %v", err)
	}

	if _, err := os.Stat(confPath); err != nil {
		t.Errorf("expected configuration file: %v", err)
	}
}

func TestYAMLValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
		ok   bool
	}{
		{"nil", nil, nil, false},
		{"bool false", false, false, true},
		{"empty string", "", "", false},
		{"string", "json", "json", true},
		{"int", 42, "42", true},
		{"float", 0.5, "0.5", true},
		{"stringer", time.Second, "1s", true},
		{"empty list", []string{}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := yamlValue(tt.in)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}

			if ok && got != tt.want {
				t.Errorf("expected %#v, got %#v", tt.want, got)
			}
		})
	}

	if got, ok := yamlValue([]string{"a.reap", "b.reap"}); !ok || len(got.([]string)) != 2 {
		t.Errorf("expected list to be kept, got %v", got)
	}
}

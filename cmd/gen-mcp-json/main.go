package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/orgair/orgair-mcp/pkg/config"
)

const serverKey = "orgair"

type manifest struct {
	MCPServers map[string]serverDef `json:"mcpServers"`
}

type serverDef struct {
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

func main() {
	v := viper.New()
	if _, err := config.Load(v); err != nil {
		fail("failed to load config: %v", err)
	}

	data, err := json.MarshalIndent(buildManifest(v, serverCommand()), "", "  ")
	if err != nil {
		fail("failed to marshal .mcp.json: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		fail("failed to read the working directory: %v", err)
	}
	root, err := findModuleRoot(wd)
	if err != nil {
		fail("failed to locate module root: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ".mcp.json"), append(data, '\n'), 0o644); err != nil {
		fail("failed to write .mcp.json: %v", err)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// serverCommand honours ORGAIR_MCP_GEN_COMMAND, then BUILD_DIR/BINARY_NAME,
// then the default build output.
func serverCommand() string {
	if command := os.Getenv(config.EnvPrefix + "_GEN_COMMAND"); command != "" {
		return command
	}
	if dir, bin := os.Getenv("BUILD_DIR"), os.Getenv("BINARY_NAME"); dir != "" && bin != "" {
		return filepath.ToSlash(filepath.Join(dir, bin))
	}
	return filepath.ToSlash(filepath.Join("./build", "orgair-mcp"))
}

// buildManifest pins every effective setting as an environment variable so
// clients launch the server with the configuration the generator saw.
func buildManifest(v *viper.Viper, command string) manifest {
	env := make(map[string]string)
	for _, key := range v.AllKeys() {
		env[envKey(key)] = envValue(v.Get(key))
	}
	return manifest{MCPServers: map[string]serverDef{
		serverKey: {Command: command, Args: []string{}, Env: env},
	}}
}

func envKey(dotted string) string {
	return config.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(dotted, ".", "_"))
}

// envValue renders lists comma separated, the form viper splits back.
func envValue(v any) string {
	switch v.(type) {
	case []string, []any:
		return strings.Join(cast.ToStringSlice(v), ",")
	}
	return cast.ToString(v)
}

func findModuleRoot(start string) (string, error) {
	for dir := start; ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found in any parent directory")
		}
		dir = parent
	}
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	// RosterDir points at the directory holding heroes.yaml and
	// bestiary.yaml. Defaults to ./roster.
	RosterDir string `json:"roster_dir"`
	// ActionTimeoutSeconds is how long a battle may sit idle before the
	// background scanner expires it.
	ActionTimeoutSeconds int `json:"action_timeout_seconds"`
	// Optional summary prompt template used to generate the victory
	// narrative. Use the token {{events}} where the battle-log excerpt
	// will be substituted and {{outcome}} for the result line. If not
	// provided, a sensible default is used by the narrative client.
	SummaryPrompt string `json:"summary_prompt"`
}

// LoadedConfig contains the server address, roster location and tunables.
type LoadedConfig struct {
	ServerAddress         string
	RosterDir             string
	ActionTimeout         time.Duration
	SummaryPromptTemplate string
}

// LoadConfig reads the configuration file at path. All keys are optional;
// missing values fall back to defaults suitable for local development.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	rosterDir := rc.RosterDir
	if rosterDir == "" {
		rosterDir = "./roster"
	}
	timeout := 5 * time.Minute
	if rc.ActionTimeoutSeconds > 0 {
		timeout = time.Duration(rc.ActionTimeoutSeconds) * time.Second
	}

	return &LoadedConfig{
		ServerAddress:         addr,
		RosterDir:             rosterDir,
		ActionTimeout:         timeout,
		SummaryPromptTemplate: strings.TrimSpace(rc.SummaryPrompt),
	}, nil
}

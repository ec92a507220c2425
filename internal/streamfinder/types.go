// Package streamfinder builds Baseball-Reference Stream Finder configs from
// scraped Six Picks rosters.
//
// A run resolves every picked player to an MLB id concurrently, skips the
// players that cannot be resolved, prepends the rest to the operator's
// priority list and renumbers the whole list 1..N. Everything in the base
// config other than the priority array is passed through verbatim.
package streamfinder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyInput means the run was given no players.
	ErrEmptyInput = errors.New("no players provided to generate config")
	// ErrInvalidBaseConfig means the base config is not a JSON object with a
	// priority array.
	ErrInvalidBaseConfig = errors.New("invalid base configuration format")
	// ErrNoPlayersResolved means every lookup in the batch was not found or
	// failed.
	ErrNoPlayersResolved = errors.New("could not find/add any of the selected players")
)

// Item types.
const (
	TypeBatter  = "bat"
	TypePitcher = "pit"
)

// PlayerPick is one scraped roster entry.
type PlayerPick struct {
	Name     string `json:"name" validate:"required"`
	Position string `json:"position" validate:"required"`
}

// PriorityItem is the wire shape of a generated priority entry. Field order
// is the serialization order consumed by Stream Finder.
type PriorityItem struct {
	Type      string `json:"type"`
	Data      string `json:"data"`
	Immediate string `json:"immediate"`
	Priority  int    `json:"priority"`
}

// Classify maps a roster position to an item type. Only the exact codes
// "SP" and "RP" are pitchers.
func Classify(position string) string {
	if position == "SP" || position == "RP" {
		return TypePitcher
	}
	return TypeBatter
}

// Config is a generated configuration document.
type Config struct {
	doc   []byte
	added int
	total int
}

// JSON returns the compact document. The caller must not modify it.
func (c *Config) JSON() []byte { return c.doc }

// Added is the number of new items prepended by the run.
func (c *Config) Added() int { return c.added }

// Len is the length of the final priority array.
func (c *Config) Len() int { return c.total }

// Indent returns the document pretty-printed with a two-space indent.
func (c *Config) Indent() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, c.doc, "", "  "); err != nil {
		return nil, fmt.Errorf("indent config: %w", err)
	}
	return buf.Bytes(), nil
}

// Artifact is a finished config ready to hand to the operator.
type Artifact struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Added    int    `json:"added"`
}

// FilenameFor returns the suggested download name for a config generated at
// t. The date is the UTC calendar date.
func FilenameFor(t time.Time) string {
	return "streamfinder_config_" + t.UTC().Format("2006-01-02") + ".txt"
}

// NewArtifact pretty-prints cfg and names it for now.
func NewArtifact(cfg *Config, now time.Time) (*Artifact, error) {
	content, err := cfg.Indent()
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Filename: FilenameFor(now),
		Content:  string(content),
		Added:    cfg.Added(),
	}, nil
}

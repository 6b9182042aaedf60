// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Manifest records what a run produced: the output PDF, the adjustments
// applied and the page list in order.
type Manifest struct {
	Output    string         `json:"output" yaml:"output"`
	Backend   ComposeBackend `json:"backend" yaml:"backend"`
	Contrast  float64        `json:"contrast" yaml:"contrast"`
	Brighten  int            `json:"brighten" yaml:"brighten"`
	Deletion  DeletionMode   `json:"deletion" yaml:"deletion"`
	Pages     []Page         `json:"pages" yaml:"pages"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
}

// Package renderconfig holds the block render configuration: the mapping
// from block type to the markup element that represents it, plus aliased
// element names. The HTML importer reads the configuration to build its
// supported-tag set; renderers read it to pick elements. Configuration is
// compiled-in defaults optionally overlaid by a TOML file, following the
// loader conventions used elsewhere in the project.
package renderconfig

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/richdoc/internal/content"
)

// BlockRender describes how one block type maps to markup.
type BlockRender struct {
	Element         string   `toml:"element"`
	Wrapper         string   `toml:"wrapper,omitempty"`
	AliasedElements []string `toml:"aliased_elements,omitempty"`
}

// Config maps block types to their render descriptions.
type Config struct {
	renders map[content.BlockType]BlockRender
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{renders: map[content.BlockType]BlockRender{
		content.BlockParagraph:     {Element: "p"},
		content.BlockHeaderOne:     {Element: "h1"},
		content.BlockHeaderTwo:     {Element: "h2"},
		content.BlockHeaderThree:   {Element: "h3"},
		content.BlockHeaderFour:    {Element: "h4"},
		content.BlockHeaderFive:    {Element: "h5"},
		content.BlockHeaderSix:     {Element: "h6"},
		content.BlockBlockquote:    {Element: "blockquote"},
		content.BlockCode:          {Element: "pre"},
		content.BlockOrderedList:   {Element: "ol"},
		content.BlockUnorderedList: {Element: "ul"},
		content.BlockListItem:      {Element: "li"},
		content.BlockTable:         {Element: "table"},
		content.BlockTableBody:     {Element: "tbody"},
		content.BlockTableRow:      {Element: "tr"},
		content.BlockTableCell:     {Element: "td", AliasedElements: []string{"th"}},
	}}
}

// Render returns the render description for a block type.
func (c *Config) Render(t content.BlockType) (BlockRender, bool) {
	r, ok := c.renders[t]
	return r, ok
}

// Types returns all configured block types.
func (c *Config) Types() []content.BlockType {
	out := make([]content.BlockType, 0, len(c.renders))
	for t := range c.renders {
		out = append(out, t)
	}
	return out
}

// SupportedTags returns the element-name to block-type index used by the
// importer, covering both primary elements and aliases.
func (c *Config) SupportedTags() map[string]content.BlockType {
	tags := make(map[string]content.BlockType, len(c.renders)*2)
	for t, r := range c.renders {
		if r.Element != "" {
			tags[r.Element] = t
		}
		for _, alias := range r.AliasedElements {
			tags[alias] = t
		}
	}
	return tags
}

// tomlFile is the on-disk shape of a configuration overlay.
type tomlFile struct {
	Blocks map[string]BlockRender `toml:"blocks"`
}

// ParseTOML overlays a TOML document onto the default configuration.
func ParseTOML(data []byte) (*Config, error) {
	var file tomlFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing render config: %w", err)
	}
	cfg := Default()
	for name, r := range file.Blocks {
		cfg.renders[content.BlockType(name)] = r
	}
	return cfg, nil
}

// LoadTOML loads an overlay file. A missing file is not an error: the
// defaults are returned unchanged.
func LoadTOML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading render config %s: %w", path, err)
	}
	return ParseTOML(data)
}

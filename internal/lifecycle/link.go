package lifecycle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const linksFileName = "links.json"

// LinkCreate registers the proxy directory under name as a named external
// toolchain for the companion tool ecosystem (spec §4.7 "link create"),
// writing an atomically-replaced JSON registry under the state root.
func (c *Core) LinkCreate(name string) error {
	links, err := c.loadLinks()
	if err != nil {
		return err
	}
	links[name] = c.ProxyDir
	return c.saveLinks(links)
}

// LinkRemove reverses LinkCreate.
func (c *Core) LinkRemove(name string) error {
	links, err := c.loadLinks()
	if err != nil {
		return err
	}
	delete(links, name)
	return c.saveLinks(links)
}

// LinkShow returns the current name -> proxy-directory registrations.
func (c *Core) LinkShow() (map[string]string, error) {
	return c.loadLinks()
}

func (c *Core) linksPath() string {
	return filepath.Join(c.StateRoot, linksFileName)
}

func (c *Core) loadLinks() (map[string]string, error) {
	data, err := os.ReadFile(c.linksPath())
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("lifecycle: reading link registry: %w", err)
	}
	links := make(map[string]string)
	if err := json.Unmarshal(data, &links); err != nil {
		return nil, fmt.Errorf("lifecycle: parsing link registry: %w", err)
	}
	return links, nil
}

func (c *Core) saveLinks(links map[string]string) error {
	if err := os.MkdirAll(c.StateRoot, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(links, "", "  ")
	if err != nil {
		return err
	}
	path := c.linksPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

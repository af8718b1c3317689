/*
DESCRIPTION
  file.go provides loading of booth configuration variables from a JSON file
  and live reloading of that file using fsnotify.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ausocean/utils/logging"
	"github.com/fsnotify/fsnotify"
)

// LoadFile reads a JSON config file and flattens it into a variable map
// suitable for Config.Update. The file holds a single object whose keys are
// the variable names in variables.go; values may be strings, numbers or
// bools.
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var raw map[string]interface{}
	err = json.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal config file: %w", err)
	}

	vars := make(map[string]string, len(raw))
	for k, v := range raw {
		switch _v := v.(type) {
		case string:
			vars[k] = _v
		case float64:
			vars[k] = trimFloat(_v)
		case bool:
			vars[k] = fmt.Sprintf("%t", _v)
		default:
			return nil, fmt.Errorf("unsupported type for config var %s", k)
		}
	}
	return vars, nil
}

// trimFloat formats a JSON number without a trailing ".0" so that integer
// valued fields parse as unsigned ints.
func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// Watch watches the config file at path and calls onChange with the freshly
// loaded variable map whenever the file is written or recreated. The watch is
// placed on the containing directory so that editor rename-and-replace saves
// are seen. The returned function stops the watch.
func Watch(path string, l logging.Logger, onChange func(vars map[string]string)) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create watcher: %w", err)
	}

	err = watcher.Add(filepath.Dir(path))
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("could not watch config dir: %w", err)
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				l.Info("config file changed, reloading", "path", path)
				vars, err := LoadFile(path)
				if err != nil {
					l.Warning("could not reload config file", "error", err)
					continue
				}
				onChange(vars)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				l.Warning("config watch error", "error", err)
			}
		}
	}()

	return watcher.Close, nil
}

// Package configx contains the source readers shared by the per-service
// config packages: JSON files, .env files and environment variables.
package configx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv seeds the process environment from the given .env files.
// Missing files are skipped; variables already set are not overridden.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ReadJSON decodes the JSON file at path into v. An empty path is a no-op.
func ReadJSON(path string, v any) error {
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Env overlays environment variables onto config fields. Unset or empty
// variables leave the destination untouched. The first conversion error is
// kept and reported by Err.
type Env struct {
	lookup func(string) (string, bool)
	err    error
}

// NewEnv reads from lookup, typically os.LookupEnv.
func NewEnv(lookup func(string) (string, bool)) *Env {
	return &Env{lookup: lookup}
}

func (e *Env) get(key string) (string, bool) {
	v, ok := e.lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (e *Env) fail(key, v string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("env %s=%q: %w", key, v, err)
	}
}

func (e *Env) String(dst *string, key string) {
	if v, ok := e.get(key); ok {
		*dst = v
	}
}

func (e *Env) Int(dst *int, key string) {
	if v, ok := e.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (e *Env) Bool(dst *bool, key string) {
	if v, ok := e.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (e *Env) Duration(dst *time.Duration, key string) {
	if v, ok := e.get(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = d
	}
}

// List splits a comma separated value, dropping empty items.
func (e *Env) List(dst *[]string, key string) {
	if v, ok := e.get(key); ok {
		*dst = SplitList(v)
	}
}

func (e *Env) Err() error { return e.err }

// SplitList splits s on commas and trims every item.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

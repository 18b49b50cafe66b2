// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package paths is the root of the ray-tracing core: it assembles a
// Scene (a top-level shape store plus a material table) and
// wires Camera, Integrator and Scene together for a host binding layer
// to drive. Scripting/config loading, image
// encoding and CLI handling are explicitly the host's job and are
// not part of this package.
package paths

import (
	"fmt"
	"log/slog"

	"github.com/xor-shift/paths/geom"
	"github.com/xor-shift/paths/store"
)

// Scene owns the material table and the root shape store every
// Integrator traverses. The zero value is not ready for use;
// construct one with NewScene.
type Scene struct {
	Root *store.Linear

	current store.Store // what IntersectRay actually traverses; may be a BVH layout built over Root

	materials []geom.Material
	aliases   map[string]int
}

// NewScene returns an empty scene: no shapes, no materials.
func NewScene() *Scene {
	root := store.NewLinear()
	return &Scene{Root: root, current: root, aliases: map[string]int{}}
}

// InsertMaterial appends m to the material table and, if alias is
// non-empty, registers it for later ResolveMaterial lookups. Materials are immutable after insertion.
func (s *Scene) InsertMaterial(m geom.Material, alias string) int {
	idx := len(s.materials)
	s.materials = append(s.materials, m)
	if alias != "" {
		s.aliases[alias] = idx
	}
	return idx
}

// ResolveMaterial looks up a material index by the alias it was
// inserted under. Looking up against an empty
// material table is a programmer error and panics; an unknown
// alias against a non-empty table clamps to the last material and
// logs a warning rather than failing the render.
func (s *Scene) ResolveMaterial(alias string) int {
	if len(s.materials) == 0 {
		panic(fmt.Errorf("paths: resolve material %q: material table is empty", alias))
	}
	if idx, ok := s.aliases[alias]; ok {
		return idx
	}
	slog.Warn("paths: unknown material alias, clamping to last material", "alias", alias)
	return len(s.materials) - 1
}

// Material returns the material at index. An index past the end
// clamps to the last material and a negative index to the first; looking up
// against an empty table is a programmer error and panics.
func (s *Scene) Material(index int) geom.Material {
	if len(s.materials) == 0 {
		panic(fmt.Errorf("paths: material lookup on empty material table"))
	}
	if index < 0 {
		index = 0
	}
	if index >= len(s.materials) {
		index = len(s.materials) - 1
	}
	return s.materials[index]
}

// InsertShape appends shape to the scene's top-level linear store.
func (s *Scene) InsertShape(shape geom.Shape) bool { return s.Root.InsertShape(shape) }

// InsertStore mounts child as a child of the scene's top-level store.
// child may be shared with other scenes or
// stores; it is never mutated after mounting.
func (s *Scene) InsertStore(child store.Store) { s.Root.InsertStore(child) }

// UseStore swaps the store the scene actually traverses during
// rendering, typically a BVH layout built over Root. Root itself is left untouched, so the original
// linear store and any derived flat layouts may coexist.
func (s *Scene) UseStore(st store.Store) { s.current = st }

// IntersectRay implements integrator.Scene: the closest hit across
// whichever store UseStore last selected (Root by default).
func (s *Scene) IntersectRay(r *geom.Ray, stats *store.Stats) (geom.Intersection, bool) {
	return s.current.IntersectRay(r, stats)
}

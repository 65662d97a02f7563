// seehuhn.de/go/canvas - a 2D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package gm

import (
	"bytes"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"seehuhn.de/go/canvas"
)

func TestRegistry(t *testing.T) {
	names := Names()
	if !slices.IsSorted(names) {
		t.Errorf("names not sorted: %v", names)
	}
	for _, name := range []string{"complexclip4_aa", "complexclip4_bw"} {
		if !slices.Contains(names, name) {
			t.Errorf("%s not registered", name)
		}
		g, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) failed", name)
		}
		if g.Name != name {
			t.Errorf("Lookup(%q) returned %q", name, g.Name)
		}
		if g.Width != 970 || g.Height != 780 {
			t.Errorf("%s: size %dx%d, want 970x780", name, g.Width, g.Height)
		}
	}

	if _, ok := Lookup("no_such_gm"); ok {
		t.Error("Lookup succeeded for unknown name")
	}

	all := All()
	if len(all) != len(names) {
		t.Fatalf("All returned %d GMs, want %d", len(all), len(names))
	}
	for i, g := range all {
		if g.Name != names[i] {
			t.Errorf("All()[%d] is %q, want %q", i, g.Name, names[i])
		}
	}
}

func TestRegisterRejects(t *testing.T) {
	cases := []struct {
		name string
		gm   GM
	}{
		{"duplicate", GM{Name: "complexclip4_aa"}},
		{"empty", GM{}},
		{"uppercase", GM{Name: "ComplexClip"}},
		{"dash", GM{Name: "complex-clip"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := len(registry)
			defer func() {
				if recover() == nil {
					t.Error("Register did not panic")
				}
				if len(registry) != before {
					t.Error("registry modified")
				}
			}()
			Register(func() GM { return tc.gm })
		})
	}
}

func TestRenderRestoresState(t *testing.T) {
	rec := &recorder{}
	g := GM{
		Name:       "unbalanced",
		Background: green,
		Draw: func(c Canvas) {
			c.Save()
			c.Translate(1, 2)
		},
	}
	Render(g, rec)

	if rec.calls[0] != "color ff00ff00" {
		t.Errorf("first call is %q, want the background", rec.calls[0])
	}
	// Render's own Save/Restore pair must enclose Draw.
	if rec.depth != 1 {
		t.Errorf("depth after Render: %d, want 1", rec.depth)
	}
}

func TestRenderDebugLog(t *testing.T) {
	var logBuf bytes.Buffer
	canvas.SetLogger(slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer canvas.SetLogger(nil)

	g, _ := Lookup("complexclip4_bw")
	Render(g, canvas.New(g.Width, g.Height))

	log := logBuf.String()
	for _, msg := range []string{"gm: render", "canvas: replace clip"} {
		if !strings.Contains(log, msg) {
			t.Errorf("missing debug record %q", msg)
		}
	}
}

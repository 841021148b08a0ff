package diagram

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// File format: a diagram description in TOML.
//
//	[shape]
//	objects = ["i", "k", "j"]
//
//	[[shape.arrows]]
//	id  = "l"
//	src = "k"
//	dst = "i"
//
//	[categories.i]
//	objects = ["a1", "a2"]
//
//	[[categories.i.morphisms]]
//	id  = "f"
//	src = "a1"
//	dst = "a2"
//
//	[functors.l.objects]
//	x1 = "a1"
//
//	[functors.l.morphisms]
//	m1 = "f"

type fileDiagram struct {
	Shape      fileShape               `toml:"shape"`
	Categories map[string]fileCategory `toml:"categories"`
	Functors   map[string]fileFunctor  `toml:"functors"`
}

type fileShape struct {
	Objects []string    `toml:"objects"`
	Arrows  []fileArrow `toml:"arrows"`
}

type fileArrow struct {
	ID  string `toml:"id"`
	Src string `toml:"src"`
	Dst string `toml:"dst"`
}

type fileCategory struct {
	Objects   []string       `toml:"objects"`
	Morphisms []fileMorphism `toml:"morphisms"`
}

type fileMorphism struct {
	ID  string `toml:"id"`
	Src string `toml:"src"`
	Dst string `toml:"dst"`
}

type fileFunctor struct {
	Objects   map[string]string `toml:"objects"`
	Morphisms map[string]string `toml:"morphisms"`
}

// Decode parses a TOML diagram description and validates it.
func Decode(data []byte) (*Diagram, error) {
	var fd fileDiagram
	if err := toml.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("decode diagram: %w", err)
	}

	d := &Diagram{
		Shape: Shape{
			Objects: fd.Shape.Objects,
		},
		Categories: make(map[string]*Category, len(fd.Categories)),
		Functors:   make(map[string]*Functor, len(fd.Functors)),
	}
	for _, a := range fd.Shape.Arrows {
		d.Shape.Arrows = append(d.Shape.Arrows, Arrow{ID: a.ID, Src: a.Src, Dst: a.Dst})
	}
	for name, fc := range fd.Categories {
		c := &Category{Name: name, Objects: fc.Objects}
		for _, m := range fc.Morphisms {
			c.Morphisms = append(c.Morphisms, Morphism{ID: m.ID, Src: m.Src, Dst: m.Dst})
		}
		d.Categories[name] = c
	}
	for id, ff := range fd.Functors {
		f := &Functor{ObjMap: ff.Objects, MorMap: ff.Morphisms}
		if f.ObjMap == nil {
			f.ObjMap = make(map[string]string)
		}
		if f.MorMap == nil {
			f.MorMap = make(map[string]string)
		}
		d.Functors[id] = f
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("decode diagram: %w", err)
	}
	return d, nil
}

// Load reads and decodes a diagram description file.
func Load(path string) (*Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load diagram: %w", err)
	}
	return Decode(data)
}

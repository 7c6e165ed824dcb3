// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"fmt"
	"reflect"
	"testing"

	"topictree/internal/models"
)

// chain builds a tree of the given depth where every node has two children
// and carries stale or missing classification.
func chain(depth int) *models.TopicTree {
	var build func(level int, name string) *models.Collection
	build = func(level int, name string) *models.Collection {
		c := models.NewCollection(name, name, "desc "+name, []string{"kw-" + name})
		switch level % 3 {
		case 0:
			c.Properties.SetClassification("stale-discipline", "stale-context")
		case 1:
			c.Properties.Discipline = []string{"a", "b"}
		}
		if level < depth {
			for i := 0; i < 2; i++ {
				c.AddChild(build(level+1, fmt.Sprintf("%s.%d", name, i)))
			}
		}
		return c
	}
	return &models.TopicTree{Collection: []*models.Collection{build(1, "A"), build(1, "B")}}
}

func TestPropagate_ArbitraryDepth(t *testing.T) {
	for _, depth := range []int{1, 3, 7} {
		tree := chain(depth)
		Propagate(tree, "disc", "ctx")

		n := 0
		tree.Walk(func(c *models.Collection, _ int) bool {
			n++
			if !reflect.DeepEqual(c.Properties.Discipline, []string{"disc"}) {
				t.Errorf("depth %d: %q discipline = %v", depth, c.Title, c.Properties.Discipline)
			}
			if !reflect.DeepEqual(c.Properties.EducationalContext, []string{"ctx"}) {
				t.Errorf("depth %d: %q context = %v", depth, c.Title, c.Properties.EducationalContext)
			}
			return true
		})
		if want := 2 * (1<<depth - 1); n != want {
			t.Errorf("depth %d: visited %d nodes, want %d", depth, n, want)
		}
		if tree.Depth() != depth {
			t.Errorf("Depth() = %d, want %d", tree.Depth(), depth)
		}
	}
}

func TestPropagate_LeavesContentAlone(t *testing.T) {
	tree := chain(2)
	Propagate(tree, "disc", "ctx")

	tree.Walk(func(c *models.Collection, _ int) bool {
		p := c.Properties
		if p.PrimaryTitle() != c.Title || p.PrimaryDescription() != "desc "+c.Title {
			t.Errorf("%q content changed: %+v", c.Title, p)
		}
		if !reflect.DeepEqual(p.Keywords, []string{"kw-" + c.Title}) {
			t.Errorf("%q keywords changed: %v", c.Title, p.Keywords)
		}
		return true
	})
}

func TestPropagate_EmptyValuesClear(t *testing.T) {
	tree := chain(2)
	Propagate(tree, "", "")
	tree.Walk(func(c *models.Collection, _ int) bool {
		if c.Properties.Discipline != nil || c.Properties.EducationalContext != nil {
			t.Errorf("%q kept classification", c.Title)
		}
		return true
	})
}

func TestPropagate_MissingProperties(t *testing.T) {
	node := &models.Collection{Title: "Bare", ShortTitle: "Bare"}
	tree := &models.TopicTree{Collection: []*models.Collection{node}}

	Propagate(tree, "disc", "ctx")

	if node.Properties == nil || node.Properties.PrimaryTitle() != "Bare" {
		t.Fatalf("properties not created: %+v", node.Properties)
	}
	if node.Properties.Discipline[0] != "disc" {
		t.Errorf("discipline = %v", node.Properties.Discipline)
	}
}

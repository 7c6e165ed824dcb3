// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import "topictree/internal/models"

// Propagate overwrites the discipline and educational context identifiers
// of every node, at any depth, with the given values. Titles, descriptions
// and keywords are left alone.
func Propagate(tree *models.TopicTree, discipline, context string) {
	tree.Walk(func(c *models.Collection, _ int) bool {
		if c.Properties == nil {
			c.Properties = models.NewProperties(c.Title, c.ShortTitle, "", nil)
		}
		c.Properties.SetClassification(discipline, context)
		return true
	})
}

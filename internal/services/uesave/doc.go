// Package uesave wraps the external uesave converter, which transforms
// proprietary .sav containers to and from their JSON document form.
package uesave

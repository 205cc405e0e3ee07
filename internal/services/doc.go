// Package services defines the shared error taxonomy used by the editor
// core. Every failure that crosses a component boundary is tagged with one
// of the exported sentinel errors so callers can classify it without
// inspecting message text.
package services

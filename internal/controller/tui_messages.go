package controller

import "time"

type tickMsg time.Time

// changeItem is one row of the status browser.
type changeItem struct {
	path     string
	property string
	kind     string
	patch    string
}

func (c changeItem) FilterValue() string {
	return c.path + "#" + c.property
}

func (c changeItem) title() string {
	if c.property == "Source" && c.kind == "ProtectedString" {
		return c.path
	}

	return c.path + "#" + c.property
}

package ui

import (
	"ghsearch/internal/domain"
)

// ViewStateMsg delivers a new result snapshot to the UI
type ViewStateMsg struct {
	State domain.ViewState
}

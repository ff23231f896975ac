package store

import "github.com/studiowebux/fileview/internal/types"

// Pure helpers over tab lists. None of them modify their input.

// AppendTab returns a new list with tab added at the end
func AppendTab(tabs []types.Tab, tab types.Tab) []types.Tab {
	out := make([]types.Tab, 0, len(tabs)+1)
	out = append(out, tabs...)
	return append(out, tab)
}

// RemoveTab returns a new list without the tab with the given id,
// and whether such a tab existed
func RemoveTab(tabs []types.Tab, id int64) ([]types.Tab, bool) {
	out := make([]types.Tab, 0, len(tabs))
	found := false
	for _, tab := range tabs {
		if tab.ID == id {
			found = true
			continue
		}
		out = append(out, tab)
	}
	return out, found
}

// FindTab returns the tab with the given id
func FindTab(tabs []types.Tab, id int64) (types.Tab, bool) {
	for _, tab := range tabs {
		if tab.ID == id {
			return tab, true
		}
	}
	return types.Tab{}, false
}

// FindTabByName returns the first tab with exactly this name
func FindTabByName(tabs []types.Tab, name string) (types.Tab, bool) {
	for _, tab := range tabs {
		if tab.Name == name {
			return tab, true
		}
	}
	return types.Tab{}, false
}

// IndexOfTab returns the position of the tab with the given id, or -1
func IndexOfTab(tabs []types.Tab, id int64) int {
	for i, tab := range tabs {
		if tab.ID == id {
			return i
		}
	}
	return -1
}

package gui

import "github.com/oliverbestmann/shaderplay/glm"

// Memory holds the state that survives between frames.
type Memory struct {
	// widget currently capturing the pointer
	active ID

	// at most one popup is open at a time
	openPopup ID

	windows map[ID]*windowState
	grids   map[ID]*gridState

	// fractional drag movement not yet applied to an integer value
	dragRemainder map[ID]float32
}

func newMemory() Memory {
	return Memory{
		windows:       map[ID]*windowState{},
		grids:         map[ID]*gridState{},
		dragRemainder: map[ID]float32{},
	}
}

func (m *Memory) IsPopupOpen(id ID) bool {
	return m.openPopup == id
}

func (m *Memory) OpenPopup(id ID) {
	m.openPopup = id
}

func (m *Memory) ClosePopup() {
	m.openPopup = 0
}

func (m *Memory) TogglePopup(id ID) {
	if m.IsPopupOpen(id) {
		m.ClosePopup()
	} else {
		m.OpenPopup(id)
	}
}

// ActiveID is the widget currently being pressed or dragged.
func (m *Memory) ActiveID() ID {
	return m.active
}

func (m *Memory) window(id ID, defaultWidth float32) *windowState {
	state, ok := m.windows[id]
	if !ok {
		state = &windowState{size: glm.Vec2f{defaultWidth, 0}}
		m.windows[id] = state
	}

	return state
}

func (m *Memory) grid(id ID) *gridState {
	state, ok := m.grids[id]
	if !ok {
		state = &gridState{}
		m.grids[id] = state
	}

	return state
}
